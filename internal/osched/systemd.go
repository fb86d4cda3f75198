package osched

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nudgecli/nudge/internal/reminder"
)

// systemdAdapter schedules a user timer and a oneshot service that runs a
// notify-send script.
type systemdAdapter struct {
	*base
}

func (a *systemdAdapter) Backend() string { return BackendSystemd }

func (a *systemdAdapter) unitDir() string {
	return filepath.Join(a.home, ".config", "systemd", "user")
}

func unitName(id string) string {
	return "reminder-" + id
}

func notifySendScript(task string) string {
	return fmt.Sprintf("#!/bin/bash\nnotify-send %s %s\n", ShellQuote(NotificationTitle), ShellQuote(task))
}

func serviceUnit(id, script string) string {
	return fmt.Sprintf(`[Unit]
Description=Reminder %s

[Service]
Type=oneshot
ExecStart=%s
`, id, ShellQuote(script))
}

// timerUnit pins the timer to an absolute UTC calendar time.
func timerUnit(id string, when time.Time) string {
	return fmt.Sprintf(`[Unit]
Description=Timer for reminder %s

[Timer]
OnCalendar=%s UTC
Persistent=true

[Install]
WantedBy=timers.target
`, id, when.UTC().Format("2006-01-02 15:04:05"))
}

// Schedule writes the script and both units, then enables the timer. On
// any failure the files are removed again and, if systemd already saw
// them, the user manager is reloaded.
func (a *systemdAdapter) Schedule(ctx context.Context, req reminder.Request) (_ ScheduledReminder, err error) {
	id, err := a.begin(req)
	if err != nil {
		return ScheduledReminder{}, err
	}
	name := unitName(id)
	script := a.scriptPath(id, ".sh")
	service := filepath.Join(a.unitDir(), name+".service")
	timer := filepath.Join(a.unitDir(), name+".timer")

	w := a.track()
	reloaded := false
	defer func() {
		if err == nil {
			return
		}
		w.discard()
		if reloaded {
			_ = a.exec(ctx, "", "systemctl", "--user", "daemon-reload")
		}
	}()

	if err := w.write(script, notifySendScript(req.Task), 0755); err != nil {
		return ScheduledReminder{}, err
	}
	if err := w.write(service, serviceUnit(id, script), 0644); err != nil {
		return ScheduledReminder{}, err
	}
	if err := w.write(timer, timerUnit(id, req.When), 0644); err != nil {
		return ScheduledReminder{}, err
	}

	if err := a.exec(ctx, "", "systemctl", "--user", "daemon-reload"); err != nil {
		return ScheduledReminder{}, err
	}
	reloaded = true
	if err := a.exec(ctx, "", "systemctl", "--user", "enable", "--now", name+".timer"); err != nil {
		return ScheduledReminder{}, err
	}
	a.log.Info("osched: scheduled %s for %s", name, req.When.Format(time.RFC3339))
	return a.result(id, req, BackendSystemd, script, service, timer), nil
}

// Cancel disables the timer and removes the unit files and script. The
// unit files are removed even when systemctl fails.
func (a *systemdAdapter) Cancel(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	name := unitName(id)
	service := filepath.Join(a.unitDir(), name+".service")
	timer := filepath.Join(a.unitDir(), name+".timer")

	ok, err := a.exists(timer)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := a.removeAll(a.scriptPath(id, ".sh"), service); err != nil {
			return err
		}
		return ErrUnknownReminder
	}

	disableErr := a.exec(ctx, "", "systemctl", "--user", "disable", "--now", name+".timer")
	if _, err := a.removeAll(timer, service, a.scriptPath(id, ".sh")); err != nil {
		return err
	}
	if err := a.exec(ctx, "", "systemctl", "--user", "daemon-reload"); err != nil {
		return err
	}
	return disableErr
}
