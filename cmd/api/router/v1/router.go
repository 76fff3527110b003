package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	queueport "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/queue/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
	messagingHTTP "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/presentation/http"
	userHTTP "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/user/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, registry presence.Registry, directory *realtime.Directory, locks *realtime.KeyedMutex, client queueport.Client, issuer *auth.TokenIssuer, log logrus.FieldLogger) {
	v1 := r.Group("/api/v1")
	userHTTP.RegisterRoutes(v1, pool, issuer)
	messagingHTTP.RegisterRoutes(v1, pool, registry, directory, locks, client, issuer, log)
}
