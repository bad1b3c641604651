package dto

import (
	"time"

	"github.com/trainermarkt/backend/internal/models"
)

// Actions accepted by the request update endpoint.
const (
	ActionCounter = "counter"
	ActionAccept  = "accept"
	ActionDecline = "decline"
	ActionBook    = "book"
)

type CreateRequestBody struct {
	TrainerID uint `json:"trainer_id"`
}

type UpdateRequestBody struct {
	Action       string   `json:"action"`
	CounterPrice *float64 `json:"counter_price,omitempty"`
}

type CreateTrainingRequest struct {
	Title        string              `json:"title"`
	Topic        string              `json:"topic"`
	DailyRate    float64             `json:"daily_rate"`
	StartAt      time.Time           `json:"start_at"`
	DurationDays int                 `json:"duration_days"`
	LocationType models.LocationType `json:"location_type"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
}

type UpdateTrainerProfileRequest struct {
	Name           string                `json:"name"`
	DailyRate      float64               `json:"daily_rate"`
	Topics         []string              `json:"topics"`
	DeliveryTypes  []models.DeliveryType `json:"delivery_types"`
	Latitude       *float64              `json:"latitude,omitempty"`
	Longitude      *float64              `json:"longitude,omitempty"`
	TravelRadiusKm *float64              `json:"travel_radius_km,omitempty"`
}
