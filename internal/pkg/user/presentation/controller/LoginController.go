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
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/persistence/repository/adapter"
)

// LoginController handles credential verification and token issuance.
type LoginController struct {
	loginUC *usecase.LoginUseCase
}

func NewLoginController(pool *pgxpool.Pool, issuer *auth.TokenIssuer) *LoginController {
	repo := repoAdapter.NewPgUserRepository(pool)
	return &LoginController{loginUC: usecase.NewLoginUseCase(repo, issuer)}
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		u, token, err := h.loginUC.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}
