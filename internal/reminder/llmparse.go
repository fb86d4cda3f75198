package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/llm"
	"github.com/nudgecli/nudge/pkg/logger"
)

// LLMParser falls back to a language model when the pattern parser does
// not recognize the input.
type LLMParser struct {
	Parser
	Client llm.Client
	Log    logger.Logger
}

type llmReminder struct {
	Task     string `json:"task"`
	Datetime string `json:"datetime"`
}

// Parse runs the pattern parser first. When the text is not understood and
// a client is set, the model is asked for {task, datetime}. Any problem with the model call
// or its answer returns the pattern parser's error.
func (p LLMParser) Parse(ctx context.Context, text string, now time.Time) (Request, error) {
	r, perr := p.Parser.Parse(text, now)
	if !common.IsParse(perr) || p.Client == nil || strings.TrimSpace(text) == "" {
		return r, perr
	}
	log := logger.OrNop(p.Log)

	out, err := p.Client.Complete(ctx, llm.Request{
		Prompt:    llmPrompt(text, now),
		JSON:      true,
		MaxTokens: 200,
	})
	if err != nil {
		log.Warning("llm reminder parse: %v", err)
		return Request{}, perr
	}
	r, err = decodeLLMReminder(out, p.Location)
	if err != nil {
		log.Warning("llm reminder parse: %v", err)
		return Request{}, perr
	}
	return r, nil
}

func llmPrompt(text string, now time.Time) string {
	return fmt.Sprintf(
		"You are a reminder parser. Current UTC time is: %s. Extract a reminder from this request and return JSON { task, datetime (ISO8601) }:\n\n%q",
		now.UTC().Format(time.RFC3339), text,
	)
}

func decodeLLMReminder(out string, loc *time.Location) (Request, error) {
	var v llmReminder
	if err := json.Unmarshal([]byte(llm.StripCodeFence(out)), &v); err != nil {
		return Request{}, fmt.Errorf("decode answer: %w", err)
	}
	task := cleanTask(v.Task)
	if task == "" {
		return Request{}, errors.New("answer has no task")
	}
	when, ok := ParseDate(v.Datetime, loc)
	if !ok {
		return Request{}, common.NewParseError(v.Datetime, "invalid datetime in answer")
	}
	return Request{Task: task, When: when}, nil
}
