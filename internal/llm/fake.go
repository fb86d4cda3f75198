package llm

import (
	"context"
	"sync"
)

// Fake is a Client for tests. It returns Response/Err and records prompts.
type Fake struct {
	Response string
	Err      error

	mu       sync.Mutex
	requests []Request
}

func (f *Fake) Complete(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

// Requests returns a copy of the recorded requests.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

var _ Client = (*Fake)(nil)
