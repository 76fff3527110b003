package controller

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/SURYAKANTAP/whatsapp-backend/internal/infrastructure/realtime"
	"github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/application/usecase"
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
)

// WsNotifier delivers outbound notification frames over the websocket
// connections tracked in the local directory. Targeted sends report false
// when no live handle accepts the payload; broadcast sends are fire-and-forget
// per recipient so one slow connection never delays the rest.
type WsNotifier struct {
	directory *realtime.Directory
	log       logrus.FieldLogger
}

func NewWsNotifier(directory *realtime.Directory, log logrus.FieldLogger) *WsNotifier {
	return &WsNotifier{directory: directory, log: log}
}

// Ensure interface compliance at compile time
var _ usecase.Notifier = (*WsNotifier)(nil)

func (n *WsNotifier) ReceiveMessage(userID string, msg messaging.Message) bool {
	return n.sendTo(userID, receiveMessageFrame{Type: "receiveMessage", Message: msg})
}

func (n *WsNotifier) MissedMessages(userID string, msgs []messaging.Message) bool {
	return n.sendTo(userID, missedMessagesFrame{Type: "missedMessages", Messages: msgs})
}

func (n *WsNotifier) MessagesRead(userID, conversationPartnerID string) bool {
	return n.sendTo(userID, messagesReadFrame{Type: "messagesRead", ConversationPartnerID: conversationPartnerID})
}

func (n *WsNotifier) BroadcastOnline(userIDs []string) {
	if userIDs == nil {
		userIDs = []string{}
	}
	payload, err := json.Marshal(onlineUsersFrame{Type: "onlineUsersUpdate", UserIDs: userIDs})
	if err != nil {
		n.log.WithError(err).Error("failed to encode online users frame")
		return
	}
	n.directory.Each(func(userID string, h realtime.Handle) {
		if err := h.Send(payload); err != nil {
			n.log.WithFields(logrus.Fields{"user": userID, "error": err}).
				Debug("dropped presence broadcast to dead handle")
		}
	})
}

func (n *WsNotifier) sendTo(userID string, frame any) bool {
	h, ok := n.directory.Lookup(userID)
	if !ok {
		return false
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		n.log.WithError(err).Error("failed to encode outbound frame")
		return false
	}
	return h.Send(payload) == nil
}
