package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// MarkReadInput says that ReaderID has viewed their conversation with
// OtherUserID.
type MarkReadInput struct {
	ReaderID    string
	OtherUserID string
}

// MarkReadUseCase bulk-transitions every unread message from OtherUserID to
// ReaderID into status read and, when at least one row changed, sends the
// original sender a single read receipt. Calling it again with no new
// messages changes nothing and sends nothing.
type MarkReadUseCase struct {
	Repo     repository.MessageRepository
	Notifier Notifier
	Log      logrus.FieldLogger
}

func NewMarkReadUseCase(repo repository.MessageRepository, notifier Notifier, log logrus.FieldLogger) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo, Notifier: notifier, Log: log}
}

// Execute returns the number of messages transitioned to read.
func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) (int64, error) {
	if in.ReaderID == "" || in.OtherUserID == "" {
		return 0, fmt.Errorf("%w: reader and other user ids are required", ErrValidation)
	}

	n, err := uc.Repo.MarkConversationRead(ctx, in.OtherUserID, in.ReaderID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n == 0 {
		return 0, nil
	}

	// Notify the sender which conversation was read; if they are not routed
	// locally they simply catch up from history on next load.
	uc.Notifier.MessagesRead(in.OtherUserID, in.ReaderID)

	uc.Log.WithFields(logrus.Fields{"reader": in.ReaderID, "sender": in.OtherUserID, "count": n}).
		Debug("conversation marked read")
	return n, nil
}
