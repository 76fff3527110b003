package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/application/usecase"
	user "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/domain"
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/adapter"
)

// SignupController handles account registration (one controller per endpoint).
type SignupController struct {
	signupUC *usecase.SignupUseCase
}

func NewSignupController(pool *pgxpool.Pool, issuer *auth.TokenIssuer) *SignupController {
	repo := repoAdapter.NewPgUserRepository(pool)
	return &SignupController{signupUC: usecase.NewSignupUseCase(repo, issuer)}
}

// credentialsRequest is the DTO shared by signup and login request bodies.
type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *SignupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		u, token, err := h.signupUC.Execute(ctx, usecase.SignupInput{Email: req.Email, Password: req.Password})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrEmailTaken):
				c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrPasswordTooWeak):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}
