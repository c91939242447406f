package event

import "time"

// CHAT MESSAGE EVENT
type ChatMessageEvent struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (*ChatMessageEvent) Op() string {
	return "chat-message"
}

// MESSAGE EVENT
type MessageEvent struct {
	Text      string    `json:"text"`
	SenderID  string    `json:"senderId"`
	Timestamp time.Time `json:"timestamp"`
}

func (*MessageEvent) Op() string {
	return "message"
}

// ERROR EVENT
type ErrorEvent struct {
	Message string `json:"message"`
}

func (*ErrorEvent) Op() string {
	return "error"
}
