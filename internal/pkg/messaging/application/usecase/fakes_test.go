package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
	repository "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/persistence/repository/port"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// memRepo is an in-memory MessageRepository mirroring the guarded-update
// semantics of the Postgres adapter, with injectable failures.
type memRepo struct {
	mu   sync.Mutex
	msgs []messaging.Message

	createErr error
	findErr   error
	updateErr error
}

var _ repository.MessageRepository = (*memRepo)(nil)

func (r *memRepo) Create(_ context.Context, m messaging.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.msgs {
		if existing.ID == m.ID {
			return nil
		}
	}
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *memRepo) FindByRecipientAndStatus(_ context.Context, recipientID string, status messaging.Status) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []messaging.Message
	for _, m := range r.msgs {
		if m.RecipientID == recipientID && m.Status == status {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (r *memRepo) FindConversation(_ context.Context, userID, otherUserID string) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []messaging.Message
	for _, m := range r.msgs {
		if (m.SenderID == userID && m.RecipientID == otherUserID) ||
			(m.SenderID == otherUserID && m.RecipientID == userID) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (r *memRepo) ListConversations(_ context.Context, userID string) ([]messaging.ConversationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	latest := make(map[string]messaging.Message)
	for _, m := range r.msgs {
		var other string
		switch {
		case m.SenderID == userID:
			other = m.RecipientID
		case m.RecipientID == userID:
			other = m.SenderID
		default:
			continue
		}
		if prev, ok := latest[other]; !ok || m.Timestamp > prev.Timestamp {
			latest[other] = m
		}
	}
	var out []messaging.ConversationSummary
	for other, m := range latest {
		out = append(out, messaging.ConversationSummary{OtherUserID: other, LastMessage: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessage.Timestamp > out[j].LastMessage.Timestamp })
	return out, nil
}

func (r *memRepo) UpdateStatusByIDs(_ context.Context, ids []string, from, to messaging.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var n int64
	for i := range r.msgs {
		if wanted[r.msgs[i].ID] && r.msgs[i].Status == from {
			r.msgs[i].Status = to
			n++
		}
	}
	return n, nil
}

func (r *memRepo) MarkConversationRead(_ context.Context, senderID, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	var n int64
	for i := range r.msgs {
		m := &r.msgs[i]
		if m.SenderID == senderID && m.RecipientID == recipientID && m.Status != messaging.StatusRead {
			m.Status = messaging.StatusRead
			n++
		}
	}
	return n, nil
}

func (r *memRepo) AdvanceStatus(_ context.Context, id string, to messaging.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return 0, r.updateErr
	}
	for i := range r.msgs {
		if r.msgs[i].ID == id && r.msgs[i].Status.CanAdvanceTo(to) {
			r.msgs[i].Status = to
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memRepo) byID(id string) (messaging.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ID == id {
			return m, true
		}
	}
	return messaging.Message{}, false
}

// fakeNotifier records every outbound notification and simulates per-user
// reachability: a push to an unreachable user returns false, the way a
// missing or dead handle does.
type fakeNotifier struct {
	mu           sync.Mutex
	reachable    map[string]bool
	received     map[string][]messaging.Message
	missed       map[string][][]messaging.Message
	readReceipts map[string][]string
	broadcasts   [][]string
}

var _ Notifier = (*fakeNotifier)(nil)

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		reachable:    make(map[string]bool),
		received:     make(map[string][]messaging.Message),
		missed:       make(map[string][][]messaging.Message),
		readReceipts: make(map[string][]string),
	}
}

func (n *fakeNotifier) setReachable(userID string, ok bool) {
	n.mu.Lock()
	n.reachable[userID] = ok
	n.mu.Unlock()
}

func (n *fakeNotifier) ReceiveMessage(userID string, msg messaging.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.reachable[userID] {
		return false
	}
	n.received[userID] = append(n.received[userID], msg)
	return true
}

func (n *fakeNotifier) MissedMessages(userID string, msgs []messaging.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.reachable[userID] {
		return false
	}
	batch := make([]messaging.Message, len(msgs))
	copy(batch, msgs)
	n.missed[userID] = append(n.missed[userID], batch)
	return true
}

func (n *fakeNotifier) MessagesRead(userID, conversationPartnerID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.reachable[userID] {
		return false
	}
	n.readReceipts[userID] = append(n.readReceipts[userID], conversationPartnerID)
	return true
}

func (n *fakeNotifier) BroadcastOnline(userIDs []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	set := make([]string, len(userIDs))
	copy(set, userIDs)
	n.broadcasts = append(n.broadcasts, set)
}

func (n *fakeNotifier) receivedBy(userID string) []messaging.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]messaging.Message(nil), n.received[userID]...)
}

func (n *fakeNotifier) missedBatches(userID string) [][]messaging.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([][]messaging.Message(nil), n.missed[userID]...)
}

func (n *fakeNotifier) lastBroadcast() ([]string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.broadcasts) == 0 {
		return nil, false
	}
	return n.broadcasts[len(n.broadcasts)-1], true
}

// erringRegistry fails every operation; used to verify presence outages
// degrade instead of breaking delivery.
type erringRegistry struct{}

var _ presence.Registry = (*erringRegistry)(nil)

var errRegistryDown = errors.New("registry down")

func (erringRegistry) Add(context.Context, string) error              { return errRegistryDown }
func (erringRegistry) Remove(context.Context, string) error           { return errRegistryDown }
func (erringRegistry) Contains(context.Context, string) (bool, error) { return false, errRegistryDown }
func (erringRegistry) Members(context.Context) ([]string, error)      { return nil, errRegistryDown }
func (erringRegistry) Ping(context.Context) error                     { return errRegistryDown }
func (erringRegistry) Close() error                                   { return nil }

// recordingHandle implements realtime.Handle for connect/disconnect tests.
type recordingHandle struct {
	mu        sync.Mutex
	sent      [][]byte
	closed    bool
	closeCode int
}

func (h *recordingHandle) Send(payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.New("handle closed")
	}
	h.sent = append(h.sent, payload)
	return nil
}

func (h *recordingHandle) Close(code int, _ string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.closeCode = code
}

func (h *recordingHandle) closedWith() (bool, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed, h.closeCode
}
