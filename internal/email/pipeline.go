package email

import "context"

// Compose drafts an email for req and sends it to req.Recipient. The
// draft is returned even when sending fails.
func Compose(ctx context.Context, d Drafter, s Sender, req GenerateRequest) (Draft, SendResult, error) {
	draft, err := d.Generate(ctx, req)
	if err != nil {
		return nil, SendResult{}, err
	}
	res, err := s.Send(ctx, Message{To: req.Recipient, Subject: draft.Subject(), Body: draft.Body()})
	return draft, res, err
}
