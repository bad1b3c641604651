package models

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
	StatusBooked   RequestStatus = "gebucht"
)

// TrainingRequest links one trainer to one training and carries the
// negotiation state between them. Exactly one row may exist per
// (training, trainer) pair.
type TrainingRequest struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	TrainingID          uint          `gorm:"not null;index" json:"training_id"`
	TrainerID           uint          `gorm:"not null;index" json:"trainer_id"`
	Status              RequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CounterPrice        *float64      `json:"counter_price,omitempty"`
	CompanyCounterPrice *float64      `json:"company_counter_price,omitempty"`
	TrainerAccepted     bool          `gorm:"not null;default:false" json:"trainer_accepted"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	Training *Training `gorm:"foreignKey:TrainingID" json:"training,omitempty"`
	Trainer  *Trainer  `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}
