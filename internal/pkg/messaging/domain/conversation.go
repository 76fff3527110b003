package messaging

// ConversationSummary pairs a conversation partner with the most recent
// message exchanged with them, used by the conversation list endpoint.
type ConversationSummary struct {
	OtherUserID string  `json:"otherUserId"`
	LastMessage Message `json:"lastMessage"`
}
