package osched

import (
	"context"
	"fmt"

	"github.com/nudgecli/nudge/internal/reminder"
)

// schtasksAdapter registers a ONCE task that shows a WPF message box.
type schtasksAdapter struct {
	*base
}

func (a *schtasksAdapter) Backend() string { return BackendSchtasks }

func taskName(id string) string {
	return "Reminder_" + id
}

func messageBoxScript(task string) string {
	return fmt.Sprintf("Add-Type -AssemblyName PresentationFramework\r\n[System.Windows.MessageBox]::Show(%s, %s)\r\n",
		PSString(task), PSString(NotificationTitle))
}

func (a *schtasksAdapter) Schedule(ctx context.Context, req reminder.Request) (_ ScheduledReminder, err error) {
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
	script := a.scriptPath(id, ".ps1")
	if err := w.write(script, messageBoxScript(req.Task), 0644); err != nil {
		return ScheduledReminder{}, err
	}
	t := req.When.In(a.loc)
	err = a.exec(ctx, "", "SCHTASKS",
		"/Create", "/SC", "ONCE",
		"/TN", taskName(id),
		"/TR", fmt.Sprintf(`powershell -ExecutionPolicy Bypass -File "%s"`, script),
		"/ST", t.Format("15:04"),
		"/SD", t.Format("01/02/2006"),
		"/F")
	if err != nil {
		return ScheduledReminder{}, err
	}
	return a.result(id, req, BackendSchtasks, script, taskName(id)), nil
}

func (a *schtasksAdapter) Cancel(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	script := a.scriptPath(id, ".ps1")
	ok, err := a.exists(script)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownReminder
	}
	delErr := a.exec(ctx, "", "SCHTASKS", "/Delete", "/TN", taskName(id), "/F")
	if _, err := a.removeAll(script); err != nil {
		return err
	}
	return delErr
}
