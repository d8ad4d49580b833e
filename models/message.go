package models

import (
	"time"
)

type MessageType string

const (
	MessageCommunal MessageType = "communal"
	MessagePrivate  MessageType = "private"
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageCommunal, MessagePrivate:
		return true
	}
	return false
}

// Message is an append-only chat entry. A nil RecipientID means the message
// belongs to the communal stream.
type Message struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	SenderID    uint        `json:"senderId" gorm:"index"`
	Sender      Member      `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	RecipientID *uint       `json:"recipientId"`
	Content     string      `json:"content"`
	Type        MessageType `json:"type" gorm:"default:communal;index"`
	CreatedAt   time.Time   `json:"createdAt"`
}
