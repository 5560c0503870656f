package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a message inside a chat thread. The thread id is an opaque
// string owned by the clients (buyer-seller or buyer-runner pairing).
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID    string    `gorm:"size:100;not null;index" json:"chat_id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// ChatParticipant links a user to a chat thread for message fan-out.
type ChatParticipant struct {
	ChatID    string    `gorm:"size:100;primaryKey" json:"chat_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ChatParticipant) TableName() string {
	return "chat_participants"
}
