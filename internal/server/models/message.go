package models

import "time"

type Message struct {
	ID             string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"message_body"`
	SentAt         time.Time `json:"sent_at"`
}
