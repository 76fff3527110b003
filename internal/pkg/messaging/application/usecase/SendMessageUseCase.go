package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a direct message.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	Text        string
}

// SendMessageUseCase is the delivery engine: it persists every accepted
// message and decides between an immediate push (recipient online and locally
// routed) and deferred pickup by the flush-on-connect path.
type SendMessageUseCase struct {
	Repo     repository.MessageRepository
	Registry presence.Registry
	Notifier Notifier
	Locks    *realtime.KeyedMutex
	Log      logrus.FieldLogger
}

func NewSendMessageUseCase(repo repository.MessageRepository, registry presence.Registry, notifier Notifier, locks *realtime.KeyedMutex, log logrus.FieldLogger) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Registry: registry, Notifier: notifier, Locks: locks, Log: log}
}

// Execute validates and persists the message, then attempts immediate
// delivery. The returned message carries the final persisted status:
// delivered when the recipient's handle accepted the push, sent otherwise.
//
// Failure modes: validation and persistence errors abort before any push; a
// push refused by a stale handle is swallowed and the message simply stays
// queued in status sent.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*messaging.Message, error) {
	msg, err := messaging.NewMessage(in.SenderID, in.RecipientID, in.Text, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	// Serialize against connect/disconnect/flush for the same recipient so the
	// push decision and the flush snapshot cannot interleave mid-transition.
	uc.Locks.Lock(in.RecipientID)
	defer uc.Locks.Unlock(in.RecipientID)

	if err := uc.Repo.Create(ctx, *msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	online, err := uc.Registry.Contains(ctx, in.RecipientID)
	if err != nil {
		// Presence lookup failure must not fail the send; the message is
		// persisted and will reach the recipient on their next connect.
		uc.Log.WithError(err).WithField("recipient", in.RecipientID).
			Warn("presence lookup failed, assuming recipient offline")
		online = false
	}

	if online {
		delivered := *msg
		delivered.Status = messaging.StatusDelivered
		if uc.Notifier.ReceiveMessage(in.RecipientID, delivered) {
			if _, err := uc.Repo.UpdateStatusByIDs(ctx, []string{msg.ID}, messaging.StatusSent, messaging.StatusDelivered); err != nil {
				// The push already happened; leaving the row in status sent
				// means a duplicate redelivery on next connect, which the
				// at-least-once contract tolerates.
				uc.Log.WithError(err).WithField("message", msg.ID).
					Warn("failed to persist delivered status")
			}
			msg.Status = messaging.StatusDelivered
		}
	}

	// Echo to the sender's own handle so their view updates without waiting
	// for a round trip. The sender may have dropped meanwhile; ignore.
	uc.Notifier.ReceiveMessage(in.SenderID, *msg)

	return msg, nil
}
