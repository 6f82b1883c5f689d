package models

import "time"

type Conversation struct {
	ID             string    `json:"conversation_id"`
	ParticipantIDs []string  `json:"participants"`
	CreatedAt      time.Time `json:"created_at"`
}
