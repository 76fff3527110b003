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

// GetConversationsController returns the caller's conversation list: one entry
// per partner with the latest message exchanged.
type GetConversationsController struct {
	listUC *usecase.ListConversationsUseCase
}

func NewGetConversationsController(pool *pgxpool.Pool) *GetConversationsController {
	repo := repoAdapter.NewPgMessageRepository(pool)
	return &GetConversationsController{listUC: usecase.NewListConversationsUseCase(repo)}
}

func (h *GetConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserID(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		summaries, err := h.listUC.Execute(ctx, usecase.ListConversationsInput{UserID: userID})
		if err != nil {
			if errors.Is(err, usecase.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch conversations"})
			return
		}
		if summaries == nil {
			summaries = []messaging.ConversationSummary{}
		}
		c.JSON(http.StatusOK, summaries)
	}
}
