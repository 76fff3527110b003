package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
)

func queuedMessage(sender, recipient, text string, ts int64) messaging.Message {
	return messaging.Message{
		ID:          uuid.NewString(),
		SenderID:    sender,
		RecipientID: recipient,
		Text:        text,
		Timestamp:   ts,
		Status:      messaging.StatusSent,
	}
}

func TestFlushDeliversQueuedBatchInOrder(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	notifier := newFakeNotifier()
	notifier.setReachable("bob", true)
	uc := NewFlushMissedMessagesUseCase(repo, notifier, newTestLogger())

	base := time.Now().Unix()
	second := queuedMessage("alice", "bob", "second", base+10)
	first := queuedMessage("carol", "bob", "first", base)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	// A message already delivered must not be replayed.
	old := queuedMessage("alice", "bob", "old", base-100)
	old.Status = messaging.StatusDelivered
	require.NoError(t, repo.Create(ctx, old))

	batch, err := uc.Execute(ctx, FlushMissedMessagesInput{UserID: "bob"})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	batches := notifier.missedBatches("bob")
	require.Len(t, batches, 1, "the flush is a single batch, not one event per message")
	require.Len(t, batches[0], 2)
	assert.Equal(t, "first", batches[0][0].Text, "batch is ordered oldest first")
	assert.Equal(t, "second", batches[0][1].Text)
	for _, m := range batches[0] {
		assert.Equal(t, messaging.StatusDelivered, m.Status)
	}

	for _, id := range []string{first.ID, second.ID} {
		stored, ok := repo.byID(id)
		require.True(t, ok)
		assert.Equal(t, messaging.StatusDelivered, stored.Status)
	}
}

func TestFlushWithNothingQueued(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	notifier := newFakeNotifier()
	notifier.setReachable("bob", true)
	uc := NewFlushMissedMessagesUseCase(repo, notifier, newTestLogger())

	batch, err := uc.Execute(ctx, FlushMissedMessagesInput{UserID: "bob"})
	require.NoError(t, err)
	assert.Nil(t, batch)
	assert.Empty(t, notifier.missedBatches("bob"), "an empty flush sends nothing")
}

func TestFlushLeavesMessagesQueuedWhenPushFails(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	notifier := newFakeNotifier()
	uc := NewFlushMissedMessagesUseCase(repo, notifier, newTestLogger())

	msg := queuedMessage("alice", "bob", "hi", time.Now().Unix())
	require.NoError(t, repo.Create(ctx, msg))

	batch, err := uc.Execute(ctx, FlushMissedMessagesInput{UserID: "bob"})
	require.NoError(t, err)
	assert.Nil(t, batch)

	stored, ok := repo.byID(msg.ID)
	require.True(t, ok)
	assert.Equal(t, messaging.StatusSent, stored.Status, "an undelivered batch stays queued for the next connect")
}

func TestFlushValidation(t *testing.T) {
	uc := NewFlushMissedMessagesUseCase(&memRepo{}, newFakeNotifier(), newTestLogger())
	_, err := uc.Execute(context.Background(), FlushMissedMessagesInput{})
	require.ErrorIs(t, err, ErrValidation)
}
