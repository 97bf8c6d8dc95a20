package ai

import "context"

type Message struct {
	Role    string
	Content string
}

// Provider generates an assistant reply for an ordered conversation transcript.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
