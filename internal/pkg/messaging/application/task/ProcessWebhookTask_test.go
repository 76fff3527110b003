package task

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/queue/port"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

const messagePayload = `{
	"metaData": {
		"entry": [{
			"changes": [{
				"value": {
					"contacts": [{"wa_id": "15550001111", "profile": {"name": "Alice"}}],
					"messages": [{
						"id": "wamid.msg1",
						"from": "15552223333",
						"timestamp": "1700000000",
						"text": {"body": "  hello there "}
					}]
				}
			}]
		}]
	}
}`

const statusPayload = `{
	"entry": [{
		"changes": [{
			"value": {
				"statuses": [
					{"id": "wamid.msg1", "status": "delivered"},
					{"id": "wamid.msg2", "status": "typing"},
					{"id": "", "status": "read"}
				]
			}
		}]
	}]
}`

func TestParseWebhookMessage(t *testing.T) {
	messages, statuses, err := parseWebhook([]byte(messagePayload))
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Empty(t, statuses)

	m := messages[0].Message
	assert.Equal(t, "wamid.msg1", m.ID)
	assert.Equal(t, "15552223333", m.SenderID)
	assert.Equal(t, "15550001111", m.RecipientID)
	assert.Equal(t, "hello there", m.Text)
	assert.Equal(t, int64(1700000000), m.Timestamp)
	assert.Equal(t, messaging.StatusSent, m.Status)
}

func TestParseWebhookStatuses(t *testing.T) {
	messages, statuses, err := parseWebhook([]byte(statusPayload))
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Unknown statuses and entries without a message id are skipped.
	require.Len(t, statuses, 1)
	assert.Equal(t, "wamid.msg1", statuses[0].MessageID)
	assert.Equal(t, messaging.StatusDelivered, statuses[0].Status)
}

func TestParseWebhookMalformed(t *testing.T) {
	_, _, err := parseWebhook([]byte(`{"entry": "not an array"`))
	require.Error(t, err)
}

// stubServer captures handler registrations without a Redis backend.
type stubServer struct {
	handlers map[string]qport.Handler
}

func (s *stubServer) Register(taskType string, h qport.Handler) {
	if s.handlers == nil {
		s.handlers = make(map[string]qport.Handler)
	}
	s.handlers[taskType] = h
}

func (s *stubServer) Run(context.Context) error { return nil }

// stubRepo records the repository calls the webhook handler makes.
type stubRepo struct {
	created  []messaging.Message
	advanced []string
	statuses map[string]messaging.Status
}

var _ repository.MessageRepository = (*stubRepo)(nil)

func (r *stubRepo) Create(_ context.Context, m messaging.Message) error {
	r.created = append(r.created, m)
	return nil
}

func (r *stubRepo) AdvanceStatus(_ context.Context, id string, to messaging.Status) (int64, error) {
	current, ok := r.statuses[id]
	if !ok || !current.CanAdvanceTo(to) {
		return 0, nil
	}
	r.statuses[id] = to
	r.advanced = append(r.advanced, id)
	return 1, nil
}

func (r *stubRepo) FindByRecipientAndStatus(context.Context, string, messaging.Status) ([]messaging.Message, error) {
	return nil, nil
}

func (r *stubRepo) FindConversation(context.Context, string, string) ([]messaging.Message, error) {
	return nil, nil
}

func (r *stubRepo) ListConversations(context.Context, string) ([]messaging.ConversationSummary, error) {
	return nil, nil
}

func (r *stubRepo) UpdateStatusByIDs(context.Context, []string, messaging.Status, messaging.Status) (int64, error) {
	return 0, nil
}

func (r *stubRepo) MarkConversationRead(context.Context, string, string) (int64, error) {
	return 0, nil
}

func newTaskLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestProcessWebhookHandlerIngestsMessage(t *testing.T) {
	srv := &stubServer{}
	repo := &stubRepo{statuses: map[string]messaging.Status{}}
	RegisterProcessWebhookTask(srv, repo, newTaskLogger())

	handler := srv.handlers[ProcessWebhookTaskType]
	require.NotNil(t, handler)

	err := handler(context.Background(), qport.Task{Type: ProcessWebhookTaskType, Payload: []byte(messagePayload)})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "wamid.msg1", repo.created[0].ID)
}

func TestProcessWebhookHandlerAdvancesStatus(t *testing.T) {
	srv := &stubServer{}
	repo := &stubRepo{statuses: map[string]messaging.Status{"wamid.msg1": messaging.StatusSent}}
	RegisterProcessWebhookTask(srv, repo, newTaskLogger())

	err := srv.handlers[ProcessWebhookTaskType](context.Background(), qport.Task{Payload: []byte(statusPayload)})
	require.NoError(t, err)
	assert.Equal(t, []string{"wamid.msg1"}, repo.advanced)
	assert.Equal(t, messaging.StatusDelivered, repo.statuses["wamid.msg1"])
}

func TestProcessWebhookHandlerSkipsRegression(t *testing.T) {
	srv := &stubServer{}
	repo := &stubRepo{statuses: map[string]messaging.Status{"wamid.msg1": messaging.StatusRead}}
	RegisterProcessWebhookTask(srv, repo, newTaskLogger())

	// A replayed "delivered" after the message is already read changes nothing
	// and is not an error, so the task is not retried.
	err := srv.handlers[ProcessWebhookTaskType](context.Background(), qport.Task{Payload: []byte(statusPayload)})
	require.NoError(t, err)
	assert.Empty(t, repo.advanced)
	assert.Equal(t, messaging.StatusRead, repo.statuses["wamid.msg1"])
}

func TestProcessWebhookHandlerDropsMalformedPayload(t *testing.T) {
	srv := &stubServer{}
	repo := &stubRepo{statuses: map[string]messaging.Status{}}
	RegisterProcessWebhookTask(srv, repo, newTaskLogger())

	err := srv.handlers[ProcessWebhookTaskType](context.Background(), qport.Task{Payload: []byte(`not json`)})
	require.NoError(t, err, "malformed payloads are dropped, not retried")
	assert.Empty(t, repo.created)
}
