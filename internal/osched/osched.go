// Package osched registers one-shot reminders with the operating system's
// own scheduler so they fire even when nudge is not running.
//
// Every adapter writes its artifacts through an afero.Fs and runs commands
// through a Runner, so tests can observe both without touching the host.
package osched

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/reminder"
	"github.com/nudgecli/nudge/pkg/logger"
)

// Backend names accepted by Select.
const (
	BackendSystemd  = "systemd"
	BackendAt       = "at"
	BackendLaunchd  = "launchd"
	BackendSchtasks = "schtasks"
)

// NotificationTitle is the title shown by every backend.
const NotificationTitle = "Reminder"

// DefaultStorageDirName is created under the home directory for scripts.
const DefaultStorageDirName = ".local-reminders"

// ErrUnknownReminder is returned by Cancel when no artifact exists for an id.
var ErrUnknownReminder = errors.New("no reminder with that id")

// ScheduledReminder describes a reminder after the OS accepted it.
type ScheduledReminder struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	When      time.Time `json:"when"`
	Platform  string    `json:"platform"`
	Backend   string    `json:"backend"`
	Artifacts []string  `json:"artifacts"`
}

// Adapter registers and removes reminders with one OS scheduler.
type Adapter interface {
	Schedule(ctx context.Context, req reminder.Request) (ScheduledReminder, error)
	Cancel(ctx context.Context, id string) error
	Backend() string
}

// Options configures an adapter. Zero values fall back to the real host.
type Options struct {
	Fs         afero.Fs
	Runner     Runner
	Home       string
	StorageDir string
	Now        func() time.Time
	// Location is used by backends that take wall-clock times.
	Location *time.Location
	Log      logger.Logger
}

// Select returns the adapter for platform (a runtime.GOOS value) and the
// optional backend name. An empty backend picks the platform default.
func Select(platform, backend string, opts Options) (Adapter, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	b, err := newBase(platform, opts)
	switch platform {
	case "linux":
		switch backend {
		case "", BackendSystemd:
			return withBase(err, func() Adapter { return &systemdAdapter{b} })
		case BackendAt:
			return withBase(err, func() Adapter { return &atAdapter{b} })
		}
	case "darwin":
		if backend == "" || backend == BackendLaunchd {
			return withBase(err, func() Adapter { return &launchdAdapter{b} })
		}
	case "windows":
		if backend == "" || backend == BackendSchtasks {
			return withBase(err, func() Adapter { return &schtasksAdapter{b} })
		}
	default:
		return nil, &common.UnsupportedPlatformError{Platform: platform}
	}
	return nil, common.NewValidationError("backend", fmt.Sprintf("%q is not available on %s", backend, platform))
}

// SelectHost is Select for the running OS.
func SelectHost(backend string, opts Options) (Adapter, error) {
	return Select(runtime.GOOS, backend, opts)
}

func withBase(err error, mk func() Adapter) (Adapter, error) {
	if err != nil {
		return nil, err
	}
	return mk(), nil
}

// base holds what every adapter shares.
type base struct {
	platform string
	fs       afero.Fs
	run      Runner
	home     string
	storage  string
	now      func() time.Time
	loc      *time.Location
	log      logger.Logger
}

func newBase(platform string, opts Options) (*base, error) {
	b := &base{
		platform: platform,
		fs:       opts.Fs,
		run:      opts.Runner,
		home:     opts.Home,
		storage:  opts.StorageDir,
		now:      opts.Now,
		loc:      opts.Location,
		log:      logger.OrNop(opts.Log),
	}
	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}
	if b.run == nil {
		b.run = ExecRunner{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.loc == nil {
		b.loc = time.Local
	}
	if b.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		b.home = home
	}
	if b.storage == "" {
		b.storage = filepath.Join(b.home, DefaultStorageDirName)
	}
	return b, nil
}

// begin validates req and returns a fresh id. Nothing is written before
// validation passes.
func (b *base) begin(req reminder.Request) (string, error) {
	now := b.now()
	if err := req.Validate(now); err != nil {
		return "", err
	}
	if err := b.fs.MkdirAll(b.storage, 0755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	return newID(now), nil
}

// newID combines the millisecond clock with a random suffix so two calls in
// the same millisecond still get distinct artifact names.
func newID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (b *base) write(path, content string, perm os.FileMode) error {
	if err := b.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(b.fs, path, []byte(content), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// written records the files one Schedule call created so a failed
// registration can remove them again.
type written struct {
	b     *base
	paths []string
}

func (b *base) track() *written {
	return &written{b: b}
}

func (w *written) write(path, content string, perm os.FileMode) error {
	w.paths = append(w.paths, path)
	return w.b.write(path, content, perm)
}

// discard removes every tracked file. Failures are logged because the
// registration error is the one the caller needs to see.
func (w *written) discard() {
	if _, err := w.b.removeAll(w.paths...); err != nil {
		w.b.log.Warning("osched: cleanup after failed schedule: %v", err)
	}
}

// exec runs a command and wraps failures in a SchedulingError that keeps
// the tool's output.
func (b *base) exec(ctx context.Context, stdin, name string, args ...string) error {
	op := name + " " + strings.Join(args, " ")
	b.log.Info("osched: running %s", op)
	out, err := b.run.Run(ctx, stdin, name, args...)
	if err != nil {
		b.log.Error("osched: %s: %v", op, err)
		return &common.SchedulingError{Op: op, Output: strings.TrimSpace(string(out)), Err: err}
	}
	return nil
}

// removeAll deletes paths and reports whether any of them existed.
func (b *base) removeAll(paths ...string) (bool, error) {
	found := false
	for _, p := range paths {
		ok, err := afero.Exists(b.fs, p)
		if err != nil {
			return found, err
		}
		if !ok {
			continue
		}
		found = true
		if err := b.fs.Remove(p); err != nil {
			return found, fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return found, nil
}

func (b *base) scriptPath(id, ext string) string {
	return filepath.Join(b.storage, id+ext)
}

func (b *base) result(id string, req reminder.Request, backend string, artifacts ...string) ScheduledReminder {
	return ScheduledReminder{
		ID:        id,
		Task:      req.Task,
		When:      req.When,
		Platform:  b.platform,
		Backend:   backend,
		Artifacts: artifacts,
	}
}

// validID rejects ids that could escape the storage directory.
func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\ .`) {
		return common.NewValidationError("id", fmt.Sprintf("invalid reminder id %q", id))
	}
	return nil
}

func (b *base) exists(path string) (bool, error) {
	return afero.Exists(b.fs, path)
}
