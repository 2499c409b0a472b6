// Package ai defines the external completion-service contract used by the
// quota-gated responder, plus the OpenAI-backed implementation. The
// responder never talks to a provider SDK directly; it is handed a Client
// so tests can substitute a stub.
package ai

import "context"

// Client generates a reply for one inbound customer message. Implementations
// must honor ctx cancellation; the responder applies a bounded timeout and
// treats a timed-out or failed call the same as empty output.
type Client interface {
	// Complete returns generated text for the given system prompt, user
	// text, and sampling temperature. An empty string with a nil error is
	// a valid outcome (the model declined to answer).
	Complete(ctx context.Context, apiKey, systemPrompt, userText string, temperature float64) (string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, apiKey, systemPrompt, userText string, temperature float64) (string, error)

// Complete implements Client.
func (f ClientFunc) Complete(ctx context.Context, apiKey, systemPrompt, userText string, temperature float64) (string, error) {
	return f(ctx, apiKey, systemPrompt, userText, temperature)
}
