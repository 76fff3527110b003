package controller

import (
	messaging "github.com/SURYAKANTAP/whatsapp-backend/internal/pkg/messaging/domain"
)

// Wire frame types exchanged over the websocket. Inbound frames are
// client-initiated events; outbound frames are the four notification kinds
// plus the handshake ack and error reporting.

type inboundFrame struct {
	Type string `json:"type"`

	// goOnline
	UserID string `json:"userId,omitempty"`

	// sendMessage
	Text      string `json:"text,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient,omitempty"`

	// markRead
	OtherUserID string `json:"otherUserId,omitempty"`
}

type ackFrame struct {
	Type string `json:"type"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type receiveMessageFrame struct {
	Type    string            `json:"type"`
	Message messaging.Message `json:"message"`
}

type missedMessagesFrame struct {
	Type     string              `json:"type"`
	Messages []messaging.Message `json:"messages"`
}

type onlineUsersFrame struct {
	Type    string   `json:"type"`
	UserIDs []string `json:"userIds"`
}

type messagesReadFrame struct {
	Type                  string `json:"type"`
	ConversationPartnerID string `json:"conversationPartnerId"`
}
