package usecase

import (
	"context"
	"fmt"

	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// ListConversationsInput wraps the user whose conversation list is requested.
type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase returns one entry per conversation partner with the
// latest message exchanged, newest conversation first.
type ListConversationsUseCase struct {
	Repo repository.MessageRepository
}

func NewListConversationsUseCase(repo repository.MessageRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]messaging.ConversationSummary, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	out, err := uc.Repo.ListConversations(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return out, nil
}
