// Package notify shows a desktop notification right away. It backs
// "nudge watch", where the process itself waits for the due time.
package notify

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/osched"
	"github.com/nudgecli/nudge/pkg/logger"
)

// Notifier shows one notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Desktop uses the platform's notification tool.
type Desktop struct {
	platform string
	run      osched.Runner
	log      logger.Logger
}

// NewDesktop returns a Desktop notifier for platform. A nil runner runs
// commands on the host.
func NewDesktop(platform string, run osched.Runner, l logger.Logger) (*Desktop, error) {
	switch platform {
	case "linux", "darwin", "windows":
	default:
		return nil, &common.UnsupportedPlatformError{Platform: platform}
	}
	if run == nil {
		run = osched.ExecRunner{}
	}
	return &Desktop{platform: platform, run: run, log: logger.OrNop(l)}, nil
}

// NewHostDesktop is NewDesktop for the running OS.
func NewHostDesktop(l logger.Logger) (*Desktop, error) {
	return NewDesktop(runtime.GOOS, nil, l)
}

// Command returns the program and arguments that display the notification.
func (d *Desktop) Command(title, message string) (string, []string) {
	switch d.platform {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s",
			osched.AppleScriptString(message), osched.AppleScriptString(title))
		return "osascript", []string{"-e", script}
	case "windows":
		script := fmt.Sprintf("Add-Type -AssemblyName PresentationFramework; [System.Windows.MessageBox]::Show(%s, %s) | Out-Null",
			osched.PSString(message), osched.PSString(title))
		return "powershell", []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", script}
	default:
		return "notify-send", []string{title, message}
	}
}

func (d *Desktop) Notify(ctx context.Context, title, message string) error {
	name, args := d.Command(title, message)
	out, err := d.run.Run(ctx, "", name, args...)
	if err != nil {
		d.log.Error("notify: %s: %v", name, err)
		return &common.SchedulingError{Op: name, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return nil
}

// Printer writes notifications as timestamped lines, for terminals
// without a desktop session.
type Printer struct {
	W   io.Writer
	Now func() time.Time
}

func (p Printer) Notify(ctx context.Context, title, message string) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	_, err := fmt.Fprintf(p.W, "[%s] %s: %s\n", now().Format("15:04:05"), title, message)
	return err
}

// Multi notifies through every notifier and returns the first error.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title, message string) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, title, message); err != nil && first == nil {
			first = err
		}
	}
	return first
}
