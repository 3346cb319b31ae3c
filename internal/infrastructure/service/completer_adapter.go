// Package service contains adapters that bind infrastructure clients to the
// ports defined by the application layer.
package service

import (
	"context"

	"github.com/record-hub/student-record-hub/internal/application/assistant"
	"github.com/record-hub/student-record-hub/internal/infrastructure/external/provider"
)

// CompleterAdapter adapts the provider client to the assistant.Completer
// port. Typed provider errors pass through unchanged so the assistant can
// classify them.
type CompleterAdapter struct {
	client *provider.Client
}

// NewCompleterAdapter creates the adapter.
func NewCompleterAdapter(client *provider.Client) *CompleterAdapter {
	return &CompleterAdapter{client: client}
}

// Complete implements assistant.Completer.
func (a *CompleterAdapter) Complete(ctx context.Context, messages []assistant.PromptMessage) (*assistant.Completion, error) {
	wire := make([]provider.Message, len(messages))
	for i, m := range messages {
		wire[i] = provider.Message{Role: m.Role, Content: m.Content}
	}

	result, err := a.client.Complete(ctx, wire)
	if err != nil {
		return nil, err
	}

	return &assistant.Completion{Text: result.Text, Raw: result.Raw}, nil
}
