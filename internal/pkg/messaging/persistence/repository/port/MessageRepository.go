package repository

import (
	"context"

	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
)

// MessageRepository defines persistence operations for the messaging domain.
//
// Bulk status updates must be atomic at the storage layer: a concurrent reader
// never observes a partially-updated batch, and the guarded updates enforce
// the one-directional sent -> delivered -> read lifecycle even under races
// between the delivery, flush and read-receipt paths.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, m messaging.Message) error

	// FindByRecipientAndStatus returns all messages addressed to recipientID in
	// the given status, ascending by timestamp.
	FindByRecipientAndStatus(ctx context.Context, recipientID string, status messaging.Status) ([]messaging.Message, error)

	// FindConversation returns the full history between the two users in both
	// directions, ascending by timestamp.
	FindConversation(ctx context.Context, userID, otherUserID string) ([]messaging.Message, error)

	// ListConversations returns, for each partner userID has exchanged messages
	// with, the most recent message, newest conversation first.
	ListConversations(ctx context.Context, userID string) ([]messaging.ConversationSummary, error)

	// UpdateStatusByIDs transitions exactly the given ids from one status to
	// another in a single atomic statement. Rows no longer in the from-status
	// are skipped, which makes redelivery races harmless. Returns the number of
	// rows changed.
	UpdateStatusByIDs(ctx context.Context, ids []string, from, to messaging.Status) (int64, error)

	// MarkConversationRead transitions every message from senderID to
	// recipientID that is not yet read into status read, atomically. Returns
	// the number of rows changed.
	MarkConversationRead(ctx context.Context, senderID, recipientID string) (int64, error)

	// AdvanceStatus moves a single message forward to the given status. The
	// update only applies if it moves the lifecycle forward; backward
	// transitions are silently skipped. Returns the number of rows changed.
	AdvanceStatus(ctx context.Context, id string, to messaging.Status) (int64, error)
}
