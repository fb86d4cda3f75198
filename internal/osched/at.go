package osched

import (
	"context"
	"fmt"
	"time"

	"github.com/nudgecli/nudge/internal/reminder"
)

// atAdapter queues the notify-send script with at(1). Useful on machines
// without a systemd user session.
type atAdapter struct {
	*base
}

func (a *atAdapter) Backend() string { return BackendAt }

// atTimespec renders when as "HH:MM D Mon YYYY" in the adapter's zone.
func atTimespec(when time.Time, loc *time.Location) []string {
	t := when.In(loc)
	return []string{t.Format("15:04"), fmt.Sprint(t.Day()), t.Format("Jan"), fmt.Sprint(t.Year())}
}

func (a *atAdapter) Schedule(ctx context.Context, req reminder.Request) (_ ScheduledReminder, err error) {
	id, err := a.begin(req)
	if err != nil {
		return ScheduledReminder{}, err
	}
	w := a.track()
	defer func() {
		if err != nil {
			w.discard()
		}
	}()
	script := a.scriptPath(id, ".sh")
	if err := w.write(script, notifySendScript(req.Task), 0755); err != nil {
		return ScheduledReminder{}, err
	}
	if err := a.exec(ctx, ShellQuote(script)+"\n", "at", atTimespec(req.When, a.loc)...); err != nil {
		return ScheduledReminder{}, err
	}
	return a.result(id, req, BackendAt, script), nil
}

// Cancel removes the script. The queued job is left in place and does
// nothing when it runs, since at(1) job numbers are not recorded.
func (a *atAdapter) Cancel(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	found, err := a.removeAll(a.scriptPath(id, ".sh"))
	if err != nil {
		return err
	}
	if !found {
		return ErrUnknownReminder
	}
	return nil
}
