package dto

import (
	"time"

	"github.com/trainermarkt/backend/internal/geo"
	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/service"
)

type RequestResponse struct {
	ID                  uint                 `json:"id"`
	TrainingID          uint                 `json:"training_id"`
	TrainerID           uint                 `json:"trainer_id"`
	Status              models.RequestStatus `json:"status"`
	CounterPrice        *float64             `json:"counter_price,omitempty"`
	CompanyCounterPrice *float64             `json:"company_counter_price,omitempty"`
	TrainerAccepted     bool                 `json:"trainer_accepted"`
	AgreedRate          *float64             `json:"agreed_rate,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

func ToRequestResponse(r *models.TrainingRequest) RequestResponse {
	resp := RequestResponse{
		ID:                  r.ID,
		TrainingID:          r.TrainingID,
		TrainerID:           r.TrainerID,
		Status:              r.Status,
		CounterPrice:        r.CounterPrice,
		CompanyCounterPrice: r.CompanyCounterPrice,
		TrainerAccepted:     r.TrainerAccepted,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}

	// Once accepted, the effective rate is the last counter on the table,
	// company's taking precedence, falling back to the training's rate.
	if r.Status == models.StatusAccepted || r.Status == models.StatusBooked {
		switch {
		case r.CompanyCounterPrice != nil:
			resp.AgreedRate = r.CompanyCounterPrice
		case r.CounterPrice != nil:
			resp.AgreedRate = r.CounterPrice
		case r.Training != nil:
			rate := r.Training.DailyRate
			resp.AgreedRate = &rate
		}
	}
	return resp
}

type TrainerSearchResult struct {
	ID                 uint                        `json:"id"`
	Name               string                      `json:"name"`
	DailyRate          float64                     `json:"daily_rate"`
	Topics             []string                    `json:"topics"`
	DeliveryTypes      []models.DeliveryType       `json:"delivery_types"`
	DistanceInfo       *geo.DistanceInfo           `json:"distance_info,omitempty"`
	OnlineTrainingInfo *service.OnlineTrainingInfo `json:"online_training_info,omitempty"`
}

func ToTrainerSearchResult(m service.TrainerMatch) TrainerSearchResult {
	return TrainerSearchResult{
		ID:                 m.Trainer.ID,
		Name:               m.Trainer.Name,
		DailyRate:          m.Trainer.DailyRate,
		Topics:             m.Trainer.Topics,
		DeliveryTypes:      m.Trainer.DeliveryTypes,
		DistanceInfo:       m.DistanceInfo,
		OnlineTrainingInfo: m.OnlineInfo,
	}
}

type TrainingResponse struct {
	ID           uint                `json:"id"`
	CompanyID    string              `json:"company_id"`
	Title        string              `json:"title"`
	Topic        string              `json:"topic"`
	DailyRate    float64             `json:"daily_rate"`
	StartAt      time.Time           `json:"start_at"`
	DurationDays int                 `json:"duration_days"`
	LocationType models.LocationType `json:"location_type"`
	Latitude     *float64            `json:"latitude,omitempty"`
	Longitude    *float64            `json:"longitude,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func ToTrainingResponse(t *models.Training) TrainingResponse {
	return TrainingResponse{
		ID:           t.ID,
		CompanyID:    t.CompanyID,
		Title:        t.Title,
		Topic:        t.Topic,
		DailyRate:    t.DailyRate,
		StartAt:      t.StartAt,
		DurationDays: t.DurationDays,
		LocationType: t.LocationType,
		Latitude:     t.Latitude,
		Longitude:    t.Longitude,
		CreatedAt:    t.CreatedAt,
	}
}

type MessageResponse struct {
	PublicID  string             `json:"public_id"`
	RequestID uint               `json:"request_id"`
	Kind      models.MessageKind `json:"kind"`
	Body      string             `json:"body"`
	ReadAt    *time.Time         `json:"read_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		PublicID:  m.PublicID,
		RequestID: m.RequestID,
		Kind:      m.Kind,
		Body:      m.Body,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
