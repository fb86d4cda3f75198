package email

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/llm"
	"github.com/nudgecli/nudge/pkg/logger"
)

const defaultMaxTokens = 500

// GenerateRequest describes the email to draft. Tone is optional.
type GenerateRequest struct {
	Recipient string `json:"recipient"`
	Topic     string `json:"topic"`
	Tone      string `json:"tone,omitempty"`
}

// Drafter produces drafts.
type Drafter interface {
	Generate(ctx context.Context, req GenerateRequest) (Draft, error)
}

// Generator drafts emails through an llm.Client.
type Generator struct {
	client    llm.Client
	log       logger.Logger
	MaxTokens int
}

// NewGenerator returns a Generator using client.
func NewGenerator(client llm.Client, l logger.Logger) *Generator {
	return &Generator{client: client, log: logger.OrNop(l), MaxTokens: defaultMaxTokens}
}

// Prompt builds the instruction sent to the model.
func Prompt(req GenerateRequest) string {
	var sb strings.Builder
	sb.WriteString(`Write an email to ` + req.Recipient + ` about "` + req.Topic + `".` + "\n")
	if tone := strings.TrimSpace(req.Tone); tone != "" {
		sb.WriteString("Tone: " + tone + "\n")
	}
	sb.WriteString(`Return a JSON object with "subject" and "body".`)
	return sb.String()
}

// Generate asks the model for a draft. Only a failed service call is an
// error; an answer that cannot be decoded becomes a RawTextDraft.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (Draft, error) {
	if strings.TrimSpace(req.Recipient) == "" {
		return nil, common.NewValidationError("recipient", "recipient is required")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return nil, common.NewValidationError("topic", "topic is required")
	}
	out, err := g.client.Complete(ctx, llm.Request{
		Prompt:    Prompt(req),
		JSON:      true,
		MaxTokens: g.MaxTokens,
	})
	if err != nil {
		return nil, &common.GenerationError{Err: err}
	}
	d := Interpret(out)
	if !d.Structured() {
		g.log.Warning("email: model answer was not a draft object, using raw text")
	}
	return d, nil
}

type draftFields struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Interpret turns model output into a Draft.
func Interpret(out string) Draft {
	raw := strings.TrimSpace(out)
	if raw == "" {
		return RawTextDraft{Text: EmptyResponseBody}
	}
	if f, ok := decodeDraft(llm.StripCodeFence(raw)); ok {
		return NewStructuredDraft(f.Subject, f.Body)
	}
	return RawTextDraft{Text: raw}
}

// decodeDraft accepts a JSON object with a non-empty subject and body,
// repairing near-JSON such as trailing commas or single quotes.
func decodeDraft(s string) (draftFields, bool) {
	if !strings.HasPrefix(s, "{") {
		return draftFields{}, false
	}
	var f draftFields
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		fixed, rerr := jsonrepair.JSONRepair(s)
		if rerr != nil {
			return draftFields{}, false
		}
		f = draftFields{}
		if err := json.Unmarshal([]byte(fixed), &f); err != nil {
			return draftFields{}, false
		}
	}
	f.Subject = strings.TrimSpace(f.Subject)
	f.Body = strings.TrimSpace(f.Body)
	if f.Subject == "" || f.Body == "" {
		return draftFields{}, false
	}
	return f, true
}
