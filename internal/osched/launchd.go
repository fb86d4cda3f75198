package osched

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nudgecli/nudge/internal/reminder"
)

// launchdAdapter writes a LaunchAgent plist that runs an osascript
// notification at a calendar time.
type launchdAdapter struct {
	*base
}

func (a *launchdAdapter) Backend() string { return BackendLaunchd }

func launchdLabel(id string) string {
	return "com.local." + id
}

func (a *launchdAdapter) plistPath(id string) string {
	return filepath.Join(a.home, "Library", "LaunchAgents", launchdLabel(id)+".plist")
}

func osascriptScript(task string) string {
	note := fmt.Sprintf("display notification %s with title %s", AppleScriptString(task), AppleScriptString(NotificationTitle))
	return fmt.Sprintf("#!/bin/bash\nosascript -e %s\n", ShellQuote(note))
}

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
  <key>Label</key>
  <string>%s</string>
  <key>ProgramArguments</key>
  <array>
    <string>/bin/bash</string>
    <string>%s</string>
  </array>
  <key>StartCalendarInterval</key>
  <dict>
    <key>Year</key><integer>%d</integer>
    <key>Month</key><integer>%d</integer>
    <key>Day</key><integer>%d</integer>
    <key>Hour</key><integer>%d</integer>
    <key>Minute</key><integer>%d</integer>
  </dict>
  <key>RunAtLoad</key><false/>
</dict>
</plist>
`

func (a *launchdAdapter) plist(id, script string, req reminder.Request) string {
	t := req.When.In(a.loc)
	return fmt.Sprintf(plistTemplate,
		launchdLabel(id), xmlEscape(script),
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

func (a *launchdAdapter) Schedule(ctx context.Context, req reminder.Request) (_ ScheduledReminder, err error) {
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
	plist := a.plistPath(id)
	if err := w.write(script, osascriptScript(req.Task), 0755); err != nil {
		return ScheduledReminder{}, err
	}
	if err := w.write(plist, a.plist(id, script, req), 0644); err != nil {
		return ScheduledReminder{}, err
	}
	if err := a.exec(ctx, "", "launchctl", "load", "-w", plist); err != nil {
		return ScheduledReminder{}, err
	}
	return a.result(id, req, BackendLaunchd, script, plist), nil
}

// Cancel boots the agent out of the user's GUI domain and removes its
// files.
func (a *launchdAdapter) Cancel(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	plist := a.plistPath(id)
	ok, err := a.exists(plist)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownReminder
	}
	domain := fmt.Sprintf("gui/%d/%s", currentUID(), launchdLabel(id))
	bootErr := a.exec(ctx, "", "launchctl", "bootout", domain)
	if _, err := a.removeAll(plist, a.scriptPath(id, ".sh")); err != nil {
		return err
	}
	return bootErr
}
