package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	v1 "github.com/SURYAKANTAP/whatsapp-backend/cmd/api/router/v1"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/config"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/auth"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/database"
	presenceAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/adapter"
	queueAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/queue/adapter"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/application/task"
	repoAdapter "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/adapter"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.Connect(connectCtx, cfg.DBURL)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	registry, err := presenceAdapter.NewRedisRegistry(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to presence registry")
	}
	defer registry.Close()

	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("failed to create queue client")
	}
	defer queueClient.Close()

	// The webhook worker runs inside the API process; a dedicated worker
	// deployment can run the same registration standalone later.
	queueServer, err := queueAdapter.NewAsynqServer(cfg.RedisURL, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create queue server")
	}
	task.RegisterProcessWebhookTask(queueServer, repoAdapter.NewPgMessageRepository(pool), log)
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			log.WithError(err).Error("queue server stopped")
		}
	}()

	directory := realtime.NewDirectory()
	locks := realtime.NewKeyedMutex()
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, registry, directory, locks, queueClient, issuer, log)

	log.WithField("port", cfg.Port).Info("server starting")

	// Start HTTP server (blocks until shutdown)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
