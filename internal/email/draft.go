// Package email drafts messages with a language model and delivers them
// over SMTP.
package email

import "encoding/json"

const (
	// FallbackSubject is used when the model answer has no usable subject.
	FallbackSubject = "Draft email"
	// EmptyResponseBody is the body used when the model answered nothing.
	EmptyResponseBody = "Could not generate email content."
)

// Draft is a generated, unsent email. It is either a StructuredDraft or a
// RawTextDraft.
type Draft interface {
	Subject() string
	Body() string
	// Structured reports whether the model returned a usable JSON object.
	Structured() bool
}

// StructuredDraft is a draft decoded from a JSON answer.
type StructuredDraft struct {
	subject string
	body    string
}

// NewStructuredDraft returns a StructuredDraft.
func NewStructuredDraft(subject, body string) StructuredDraft {
	return StructuredDraft{subject: subject, body: body}
}

func (d StructuredDraft) Subject() string  { return d.subject }
func (d StructuredDraft) Body() string     { return d.body }
func (d StructuredDraft) Structured() bool { return true }

func (d StructuredDraft) MarshalJSON() ([]byte, error) {
	return marshalDraft(d)
}

// RawTextDraft carries model output that could not be decoded. Its subject
// is always FallbackSubject.
type RawTextDraft struct {
	Text string
}

func (d RawTextDraft) Subject() string  { return FallbackSubject }
func (d RawTextDraft) Body() string     { return d.Text }
func (d RawTextDraft) Structured() bool { return false }

func (d RawTextDraft) MarshalJSON() ([]byte, error) {
	return marshalDraft(d)
}

type draftJSON struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Structured bool   `json:"structured"`
}

func marshalDraft(d Draft) ([]byte, error) {
	return json.Marshal(draftJSON{Subject: d.Subject(), Body: d.Body(), Structured: d.Structured()})
}
