package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/application/usecase"
	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/adapter"
)

// ListUsersController returns all registered accounts.
type ListUsersController struct {
	listUC *usecase.ListUsersUseCase
}

func NewListUsersController(pool *pgxpool.Pool) *ListUsersController {
	repo := repoAdapter.NewPgUserRepository(pool)
	return &ListUsersController{listUC: usecase.NewListUsersUseCase(repo)}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		users, err := h.listUC.Execute(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if users == nil {
			users = []user.User{}
		}
		c.JSON(http.StatusOK, users)
	}
}
