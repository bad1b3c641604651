package service

import (
	"context"
	"errors"

	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/repository"
	"gorm.io/gorm"
)

type TrainerProfileInput struct {
	Name           string
	DailyRate      float64
	Topics         []string
	DeliveryTypes  []models.DeliveryType
	Latitude       *float64
	Longitude      *float64
	TravelRadiusKm *float64
}

type TrainerService interface {
	UpdateProfile(ctx context.Context, actor models.Actor, input TrainerProfileInput) (*models.Trainer, error)
	GetTrainer(ctx context.Context, id uint) (*models.Trainer, error)
	ListMessages(ctx context.Context, actor models.Actor) ([]models.Message, error)
}

type trainerService struct {
	trainerRepo repository.TrainerRepository
	messageRepo repository.MessageRepository
}

func NewTrainerService(trainerRepo repository.TrainerRepository, messageRepo repository.MessageRepository) TrainerService {
	return &trainerService{trainerRepo: trainerRepo, messageRepo: messageRepo}
}

// UpdateProfile creates the trainer profile on first call and overwrites
// it afterwards.
func (s *trainerService) UpdateProfile(ctx context.Context, actor models.Actor, input TrainerProfileInput) (*models.Trainer, error) {
	if actor.Role != models.RoleTrainer {
		return nil, ErrNotParty
	}

	trainer, err := s.trainerRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		trainer = &models.Trainer{UserID: actor.UserID}
	}

	trainer.Name = input.Name
	trainer.DailyRate = input.DailyRate
	trainer.Topics = input.Topics
	trainer.DeliveryTypes = input.DeliveryTypes
	trainer.Latitude = input.Latitude
	trainer.Longitude = input.Longitude
	trainer.TravelRadiusKm = input.TravelRadiusKm

	if err := s.trainerRepo.Save(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

func (s *trainerService) GetTrainer(ctx context.Context, id uint) (*models.Trainer, error) {
	trainer, err := s.trainerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTrainerNotFound
	}
	return trainer, nil
}

func (s *trainerService) ListMessages(ctx context.Context, actor models.Actor) ([]models.Message, error) {
	if actor.Role != models.RoleTrainer {
		return nil, ErrNotParty
	}
	trainer, err := s.trainerRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, ErrTrainerNotFound
	}
	return s.messageRepo.FindByTrainerID(ctx, trainer.ID)
}
