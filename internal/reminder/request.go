// Package reminder turns free text or explicit fields into a reminder
// request: a task description paired with a target time.
package reminder

import (
	"strings"
	"time"

	"github.com/nudgecli/nudge/common"
)

// Request is a task paired with the time it should fire. Build one with
// Parse, FromDatetime or FromMinutes and check it with Validate before use.
type Request struct {
	Task string    `json:"task"`
	When time.Time `json:"when"`
}

// Validate checks the request against now. The time is checked once here
// and never again at fire time.
func (r Request) Validate(now time.Time) error {
	if strings.TrimSpace(r.Task) == "" {
		return common.NewValidationError("task", "task is required")
	}
	if r.When.IsZero() {
		return common.NewValidationError("when", "time is required")
	}
	if !r.When.After(now) {
		return common.NewValidationError("when", "scheduled time is in the past")
	}
	return nil
}

// FromDatetime builds a request from a task and a date string accepted by
// ParseDate.
func FromDatetime(task, datetime string, loc *time.Location) (Request, error) {
	when, ok := ParseDate(datetime, loc)
	if !ok {
		return Request{}, common.NewValidationError("datetime", "invalid datetime "+quote(datetime))
	}
	return Request{Task: strings.TrimSpace(task), When: when}, nil
}

// FromMinutes builds a request firing minutes after now.
func FromMinutes(task string, minutes int, now time.Time) (Request, error) {
	if minutes <= 0 {
		return Request{}, common.NewValidationError("minutes", "must be positive")
	}
	return Request{
		Task: strings.TrimSpace(task),
		When: now.Add(time.Duration(minutes) * time.Minute),
	}, nil
}

func quote(s string) string {
	return `"` + s + `"`
}
