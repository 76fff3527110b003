package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/presentation/controller"
)

// RegisterRoutes registers account endpoints under the given router group.
// Signup and login are public; the user directory requires a valid token.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, issuer *auth.TokenIssuer) {
	signupCtl := controller.NewSignupController(pool, issuer)
	loginCtl := controller.NewLoginController(pool, issuer)
	listCtl := controller.NewListUsersController(pool)
	getCtl := controller.NewGetUserController(pool)

	g.POST("/signup", signupCtl.Handle())
	g.POST("/login", loginCtl.Handle())

	authed := g.Group("", auth.Middleware(issuer))
	authed.GET("/users", listCtl.Handle())
	authed.GET("/users/:userId", getCtl.Handle())
}
