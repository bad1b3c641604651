package models

import "time"

type DeliveryType string

const (
	DeliveryOnline DeliveryType = "online"
	DeliveryHybrid DeliveryType = "hybrid"
	DeliveryOnSite DeliveryType = "on_site"
)

type Trainer struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         string         `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string         `gorm:"not null" json:"name"`
	DailyRate      float64        `json:"daily_rate"`
	Topics         []string       `gorm:"serializer:json" json:"topics"`
	DeliveryTypes  []DeliveryType `gorm:"serializer:json" json:"delivery_types"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	TravelRadiusKm *float64       `json:"travel_radius_km,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (t *Trainer) OffersOnline() bool {
	for _, d := range t.DeliveryTypes {
		if d == DeliveryOnline {
			return true
		}
	}
	return false
}
