package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	presence "github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/presence/port"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
)

// Notifier pushes outbound notifications to connected clients. Targeted
// methods report whether the payload was accepted by a live local handle;
// false means the user is not reachable from this process, which callers
// treat as offline rather than as an error. Implementations must not block:
// a slow consumer is the transport layer's problem.
type Notifier interface {
	// ReceiveMessage delivers a single message to userID's handle.
	ReceiveMessage(userID string, msg messaging.Message) bool

	// MissedMessages delivers one batch of queued messages to userID's handle.
	MissedMessages(userID string, msgs []messaging.Message) bool

	// MessagesRead tells userID that conversationPartnerID has read their messages.
	MessagesRead(userID, conversationPartnerID string) bool

	// BroadcastOnline fans the current online set out to every connected party.
	BroadcastOnline(userIDs []string)
}

// broadcastOnline reads the shared registry and fans the membership out to all
// local connections. Registry failures degrade to skipping the broadcast;
// presence features are unavailable but nothing else is blocked.
func broadcastOnline(ctx context.Context, registry presence.Registry, notifier Notifier, log logrus.FieldLogger) {
	members, err := registry.Members(ctx)
	if err != nil {
		log.WithError(err).Warn("presence registry unavailable, skipping online broadcast")
		return
	}
	notifier.BroadcastOnline(members)
}
