package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// FlushMissedMessagesInput identifies the user whose queued messages should be
// delivered to their freshly bound connection.
type FlushMissedMessagesInput struct {
	UserID string
}

// FlushMissedMessagesUseCase delivers all messages still in status sent to a
// user who just connected, as one batch, then marks exactly that batch
// delivered.
//
// The snapshot semantics are deliberate: a message inserted concurrently with
// the flush is not marked delivered here and is picked up on a later connect.
// Delivery is at-least-once, not exactly-once.
type FlushMissedMessagesUseCase struct {
	Repo     repository.MessageRepository
	Notifier Notifier
	Log      logrus.FieldLogger
}

func NewFlushMissedMessagesUseCase(repo repository.MessageRepository, notifier Notifier, log logrus.FieldLogger) *FlushMissedMessagesUseCase {
	return &FlushMissedMessagesUseCase{Repo: repo, Notifier: notifier, Log: log}
}

// Execute returns the batch that was flushed, if any.
func (uc *FlushMissedMessagesUseCase) Execute(ctx context.Context, in FlushMissedMessagesInput) ([]messaging.Message, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	queued, err := uc.Repo.FindByRecipientAndStatus(ctx, in.UserID, messaging.StatusSent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if len(queued) == 0 {
		return nil, nil
	}

	// Push the batch with its post-flush status so clients render the state
	// the store is about to record.
	batch := make([]messaging.Message, len(queued))
	ids := make([]string, len(queued))
	for i, m := range queued {
		m.Status = messaging.StatusDelivered
		batch[i] = m
		ids[i] = m.ID
	}

	if !uc.Notifier.MissedMessages(in.UserID, batch) {
		// Handle vanished between bind and flush; leave everything queued.
		return nil, nil
	}

	// Mark exactly the snapshot's ids, and only rows still in status sent, so
	// a racing immediate delivery is never regressed and later inserts are
	// untouched.
	n, err := uc.Repo.UpdateStatusByIDs(ctx, ids, messaging.StatusSent, messaging.StatusDelivered)
	if err != nil {
		return batch, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	uc.Log.WithFields(logrus.Fields{"user": in.UserID, "count": n}).
		Info("flushed missed messages")
	return batch, nil
}
