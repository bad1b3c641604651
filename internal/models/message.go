package models

import "time"

type MessageKind string

const (
	MessageRequestAccepted MessageKind = "request_accepted"
	MessageRequestDeclined MessageKind = "request_declined"
	MessageRequestBooked   MessageKind = "request_booked"
)

// Message is a notification addressed to a trainer, written in the same
// transaction as the state transition that caused it.
type Message struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	PublicID  string      `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	TrainerID uint        `gorm:"not null;index" json:"trainer_id"`
	RequestID uint        `gorm:"not null" json:"request_id"`
	Kind      MessageKind `gorm:"type:varchar(30);not null" json:"kind"`
	Body      string      `gorm:"not null" json:"body"`
	ReadAt    *time.Time  `json:"read_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
