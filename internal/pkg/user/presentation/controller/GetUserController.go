package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/application/usecase"
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/adapter"
)

// GetUserController returns a single account by id.
type GetUserController struct {
	getUC *usecase.GetUserUseCase
}

func NewGetUserController(pool *pgxpool.Pool) *GetUserController {
	repo := repoAdapter.NewPgUserRepository(pool)
	return &GetUserController{getUC: usecase.NewGetUserUseCase(repo)}
}

func (h *GetUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		u, err := h.getUC.Execute(ctx, c.Param("userId"))
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
