package service

import (
	"context"
	"errors"
	"time"

	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/repository"
)

var ErrInvalidLocation = errors.New("physical trainings require latitude and longitude")

type TrainingInput struct {
	Title        string
	Topic        string
	DailyRate    float64
	StartAt      time.Time
	DurationDays int
	LocationType models.LocationType
	Latitude     *float64
	Longitude    *float64
}

type TrainingService interface {
	CreateTraining(ctx context.Context, actor models.Actor, input TrainingInput) (*models.Training, error)
	GetTraining(ctx context.Context, id uint) (*models.Training, error)
	ListTrainings(ctx context.Context) ([]models.Training, error)
}

type trainingService struct {
	trainingRepo repository.TrainingRepository
}

func NewTrainingService(trainingRepo repository.TrainingRepository) TrainingService {
	return &trainingService{trainingRepo: trainingRepo}
}

func (s *trainingService) CreateTraining(ctx context.Context, actor models.Actor, input TrainingInput) (*models.Training, error) {
	if actor.Role != models.RoleCompany {
		return nil, ErrCompanyOnly
	}
	if input.LocationType == models.LocationPhysical && (input.Latitude == nil || input.Longitude == nil) {
		return nil, ErrInvalidLocation
	}

	training := &models.Training{
		CompanyID:    actor.UserID,
		Title:        input.Title,
		Topic:        input.Topic,
		DailyRate:    input.DailyRate,
		StartAt:      input.StartAt,
		DurationDays: input.DurationDays,
		LocationType: input.LocationType,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
	if err := s.trainingRepo.Create(ctx, training); err != nil {
		return nil, err
	}
	return training, nil
}

func (s *trainingService) GetTraining(ctx context.Context, id uint) (*models.Training, error) {
	training, err := s.trainingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTrainingNotFound
	}
	return training, nil
}

func (s *trainingService) ListTrainings(ctx context.Context) ([]models.Training, error) {
	return s.trainingRepo.FindAll(ctx)
}
