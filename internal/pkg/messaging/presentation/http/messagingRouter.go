package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	queueport "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/queue/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/presentation/controller"
)

// RegisterRoutes registers messaging endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, registry presence.Registry, directory *realtime.Directory, locks *realtime.KeyedMutex, client queueport.Client, issuer *auth.TokenIssuer, log logrus.FieldLogger) {
	conversationsCtl := controller.NewGetConversationsController(pool)
	messagesCtl := controller.NewGetMessagesController(pool)
	webhookCtl := controller.NewWebhookController(client)
	socketCtl := controller.NewSocketController(pool, registry, directory, locks, log)

	authed := g.Group("", auth.Middleware(issuer))

	// GET /api/v1/conversations -> latest message per conversation partner
	authed.GET("/conversations", conversationsCtl.Handle())

	// GET /api/v1/messages/:otherUserId -> full history with one partner
	authed.GET("/messages/:otherUserId", messagesCtl.Handle())

	// POST /api/v1/webhook -> provider payload ingestion (verified upstream)
	g.POST("/webhook", webhookCtl.Handle())

	// GET /api/v1/ws -> websocket endpoint for realtime messaging
	g.GET("/ws", socketCtl.Handle())
}
