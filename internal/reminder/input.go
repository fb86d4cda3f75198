package reminder

import (
	"context"
	"strings"
	"time"

	"github.com/nudgecli/nudge/common"
)

// Input is the loose form accepted by the CLI and HTTP surfaces: free text,
// or a task with either an explicit datetime or a delay in minutes.
type Input struct {
	Text     string `json:"text,omitempty"`
	Task     string `json:"task,omitempty"`
	Datetime string `json:"datetime,omitempty"`
	Minutes  int    `json:"minutes,omitempty"`
}

// Resolve turns in into a validated Request. Explicit fields win over
// free text: task+datetime, then task+minutes, then text.
func (in Input) Resolve(ctx context.Context, p LLMParser, now time.Time) (Request, error) {
	var (
		r   Request
		err error
	)
	task := strings.TrimSpace(in.Task)
	switch {
	case task != "" && strings.TrimSpace(in.Datetime) != "":
		r, err = FromDatetime(task, in.Datetime, p.Location)
	case task != "" && in.Minutes != 0:
		r, err = FromMinutes(task, in.Minutes, now)
	case strings.TrimSpace(in.Text) != "":
		r, err = p.Parse(ctx, in.Text, now)
	default:
		return Request{}, common.NewValidationError("", "provide text, or task with datetime or minutes")
	}
	if err != nil {
		return Request{}, err
	}
	if err := r.Validate(now); err != nil {
		return Request{}, err
	}
	return r, nil
}
