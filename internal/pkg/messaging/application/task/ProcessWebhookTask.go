package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	qport "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/queue/port"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

// ProcessWebhookTaskType is the queue task name for ingesting a provider
// webhook payload. The raw payload bytes are carried as-is; parsing happens in
// the worker so the HTTP handler can acknowledge quickly.
const ProcessWebhookTaskType = "messaging:process_webhook"

// webhookEnvelope mirrors the provider's webhook shape. Some payloads wrap the
// entries in a metaData object, some carry them at the top level; both occur
// in recorded traffic.
type webhookEnvelope struct {
	MetaData *webhookBody   `json:"metaData"`
	Entry    []webhookEntry `json:"entry"`
}

type webhookBody struct {
	Entry []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	Changes []struct {
		Value webhookValue `json:"value"`
	} `json:"changes"`
}

type webhookValue struct {
	Messages []struct {
		ID        string `json:"id"`
		From      string `json:"from"`
		Timestamp string `json:"timestamp"`
		Text      *struct {
			Body string `json:"body"`
		} `json:"text"`
	} `json:"messages"`
	Contacts []struct {
		WaID    string `json:"wa_id"`
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
	} `json:"contacts"`
	Statuses []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"statuses"`
}

// inboundMessage is a provider-originated message extracted from a payload.
type inboundMessage struct {
	Message messaging.Message
}

// statusUpdate is a provider-originated lifecycle transition.
type statusUpdate struct {
	MessageID string
	Status    messaging.Status
}

// parseWebhook extracts new messages and status updates from a raw payload.
// Entries without usable data are skipped rather than failing the whole
// payload, matching how recorded provider traffic mixes shapes.
func parseWebhook(payload []byte) ([]inboundMessage, []statusUpdate, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, nil, fmt.Errorf("webhook: decode payload: %w", err)
	}

	entries := env.Entry
	if env.MetaData != nil {
		entries = append(entries, env.MetaData.Entry...)
	}

	var (
		messages []inboundMessage
		statuses []statusUpdate
	)
	for _, entry := range entries {
		for _, change := range entry.Changes {
			value := change.Value

			if len(value.Messages) > 0 && len(value.Contacts) > 0 {
				raw := value.Messages[0]
				contact := value.Contacts[0]
				if raw.Text == nil || strings.TrimSpace(raw.Text.Body) == "" {
					continue
				}
				ts, err := strconv.ParseInt(raw.Timestamp, 10, 64)
				if err != nil || ts <= 0 {
					ts = time.Now().Unix()
				}
				messages = append(messages, inboundMessage{Message: messaging.Message{
					ID:          raw.ID,
					SenderID:    raw.From,
					RecipientID: contact.WaID,
					Text:        strings.TrimSpace(raw.Text.Body),
					Timestamp:   ts,
					Status:      messaging.StatusSent,
				}})
				continue
			}

			for _, s := range value.Statuses {
				status, err := messaging.ParseStatus(s.Status)
				if err != nil || s.ID == "" {
					continue
				}
				statuses = append(statuses, statusUpdate{MessageID: s.ID, Status: status})
			}
		}
	}
	return messages, statuses, nil
}

// RegisterProcessWebhookTask binds the webhook ingestion handler to the queue
// server. Status updates go through the guarded AdvanceStatus so a provider
// replaying an old "delivered" after a "read" never regresses the lifecycle.
func RegisterProcessWebhookTask(srv qport.Server, repo repository.MessageRepository, log logrus.FieldLogger) {
	srv.Register(ProcessWebhookTaskType, func(ctx context.Context, t qport.Task) error {
		messages, statuses, err := parseWebhook(t.Payload)
		if err != nil {
			// Malformed payloads never become valid; don't retry.
			log.WithError(err).Warn("dropping malformed webhook payload")
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		for _, in := range messages {
			if err := repo.Create(ctx, in.Message); err != nil {
				return fmt.Errorf("webhook: create message %s: %w", in.Message.ID, err)
			}
		}
		for _, upd := range statuses {
			n, err := repo.AdvanceStatus(ctx, upd.MessageID, upd.Status)
			if err != nil {
				return fmt.Errorf("webhook: advance status for %s: %w", upd.MessageID, err)
			}
			if n == 0 {
				log.WithFields(logrus.Fields{"message": upd.MessageID, "status": upd.Status}).
					Debug("skipped non-forward status update")
			}
		}
		return nil
	})
}
