package messaging

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the delivery lifecycle state of a message.
// Transitions are monotonic and one-directional: sent -> delivered -> read.
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

// Domain-level errors for messaging behaviors
var (
	ErrEmptyText     = errors.New("messaging: text must not be empty")
	ErrMissingParty  = errors.New("messaging: sender and recipient are required")
	ErrUnknownStatus = errors.New("messaging: unknown status")
	ErrStatusRegress = errors.New("messaging: status may only move forward")
)

// rank orders statuses along the lifecycle; higher never goes back to lower.
func (s Status) rank() int {
	switch s {
	case StatusSent:
		return 0
	case StatusDelivered:
		return 1
	case StatusRead:
		return 2
	}
	return -1
}

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool { return s.rank() >= 0 }

// CanAdvanceTo reports whether moving from s to next respects the
// one-directional lifecycle. Staying in place is not an advance.
func (s Status) CanAdvanceTo(next Status) bool {
	return s.Valid() && next.Valid() && next.rank() > s.rank()
}

// ParseStatus converts a wire string to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// Message is a direct message between two users. A message is immutable once
// created except for its Status, which is mutated only by the delivery and
// read-receipt paths.
type Message struct {
	ID          string `db:"id" json:"id"`
	SenderID    string `db:"sender_id" json:"sender"`
	RecipientID string `db:"recipient_id" json:"recipient"`
	Text        string `db:"body" json:"text"`
	Timestamp   int64  `db:"ts" json:"timestamp"` // unix seconds, server-assigned
	Status      Status `db:"status" json:"status"`
}

// NewMessage validates the parties and text and produces a message in status
// sent with a server-assigned id and timestamp. The timestamp is seconds since
// epoch; clients never supply it.
func NewMessage(senderID, recipientID, text string, now time.Time) (*Message, error) {
	if senderID == "" || recipientID == "" {
		return nil, ErrMissingParty
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        trimmed,
		Timestamp:   now.Unix(),
		Status:      StatusSent,
	}, nil
}

// Advance moves the message to next, enforcing the one-directional lifecycle.
func (m *Message) Advance(next Status) error {
	if !m.Status.CanAdvanceTo(next) {
		return ErrStatusRegress
	}
	m.Status = next
	return nil
}
