package contract

import "context"

// ProcessedMessageRepository is the message-id idempotency store.
type ProcessedMessageRepository interface {
	// MarkProcessed records the message id and reports whether this call was
	// the first to see it within the dedup window.
	MarkProcessed(ctx context.Context, messageId string) (bool, error)
}
