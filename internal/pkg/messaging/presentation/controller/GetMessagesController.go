package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/application/usecase"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/adapter"
)

// GetMessagesController returns the full history between the caller and one
// conversation partner, oldest first.
type GetMessagesController struct {
	getUC *usecase.GetConversationUseCase
}

func NewGetMessagesController(pool *pgxpool.Pool) *GetMessagesController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	return &GetMessagesController{getUC: usecase.NewGetConversationUseCase(repo)}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		otherUserID := c.Param("otherUserId")
		if otherUserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "otherUserId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		msgs, err := h.getUC.Execute(ctx, usecase.GetConversationInput{
			UserID:      auth.UserID(c),
			OtherUserID: otherUserID,
		})
		if err != nil {
			if errors.Is(err, usecase.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
			return
		}
		if msgs == nil {
			msgs = []messaging.Message{}
		}
		c.JSON(http.StatusOK, msgs)
	}
}
