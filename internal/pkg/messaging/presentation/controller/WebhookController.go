package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	queueport "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/queue/port"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/application/task"
)

// WebhookController accepts raw provider webhook payloads and defers all
// parsing to a background task, so the provider gets a fast acknowledgement
// regardless of payload shape or database latency.
type WebhookController struct {
	Q queueport.Client
}

func NewWebhookController(client queueport.Client) *WebhookController {
	return &WebhookController{Q: client}
}

func (h *WebhookController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil || len(body) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payload is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := queueport.EnqueueOption{Queue: "webhook", MaxRetry: 20}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.ProcessWebhookTaskType, Payload: body}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue webhook payload"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"taskId": id})
	}
}
