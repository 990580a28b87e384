package ports

import (
	"context"

	"github.com/bft-labs/chatship/internal/domain"
)

// MessageSender posts a chat message to the backend.
type MessageSender interface {
	// SendEcho performs exactly one round trip for message.
	// It never returns an error: every failure is folded into the Result.
	SendEcho(ctx context.Context, message string) domain.Result
}
