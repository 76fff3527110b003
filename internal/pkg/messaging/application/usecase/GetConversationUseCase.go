package usecase

import (
	"context"
	"fmt"

	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// GetConversationInput identifies the two parties of a conversation history query.
type GetConversationInput struct {
	UserID      string
	OtherUserID string
}

// GetConversationUseCase fetches the full message history between two users,
// oldest first.
type GetConversationUseCase struct {
	Repo repository.MessageRepository
}

func NewGetConversationUseCase(repo repository.MessageRepository) *GetConversationUseCase {
	return &GetConversationUseCase{Repo: repo}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, in GetConversationInput) ([]messaging.Message, error) {
	if in.UserID == "" || in.OtherUserID == "" {
		return nil, fmt.Errorf("%w: both user ids are required", ErrValidation)
	}
	msgs, err := uc.Repo.FindConversation(ctx, in.UserID, in.OtherUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return msgs, nil
}
