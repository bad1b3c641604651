package service

import (
	"context"
	"strings"

	"github.com/trainermarkt/backend/internal/geo"
	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/internal/repository"
)

type SearchFilters struct {
	Topic      string
	MaxRate    *float64
	Online     bool
	Lat        *float64
	Lon        *float64
	LocationID *uint
}

type OnlineTrainingInfo struct {
	OffersOnline bool `json:"offers_online"`
}

// TrainerMatch is a search hit. Trainers outside their radius or without
// online capability are still returned, flagged as non-matching, so the
// caller can show near misses.
type TrainerMatch struct {
	Trainer      models.Trainer
	DistanceInfo *geo.DistanceInfo
	OnlineInfo   *OnlineTrainingInfo
}

type SearchService interface {
	SearchTrainers(ctx context.Context, f SearchFilters) ([]TrainerMatch, error)
}

type searchService struct {
	trainerRepo  repository.TrainerRepository
	trainingRepo repository.TrainingRepository
}

func NewSearchService(trainerRepo repository.TrainerRepository, trainingRepo repository.TrainingRepository) SearchService {
	return &searchService{trainerRepo: trainerRepo, trainingRepo: trainingRepo}
}

func (s *searchService) SearchTrainers(ctx context.Context, f SearchFilters) ([]TrainerMatch, error) {
	// A location reference resolves to the training's own matching mode:
	// online capability for online trainings, coordinates otherwise.
	if f.LocationID != nil {
		training, err := s.trainingRepo.FindByID(ctx, *f.LocationID)
		if err != nil {
			return nil, ErrTrainingNotFound
		}
		if training.LocationType == models.LocationOnline {
			f.Online = true
		} else {
			f.Lat, f.Lon = training.Latitude, training.Longitude
		}
	}

	trainers, err := s.trainerRepo.Search(ctx, f.MaxRate)
	if err != nil {
		return nil, err
	}

	matches := make([]TrainerMatch, 0, len(trainers))
	for _, trainer := range trainers {
		if f.Topic != "" && !offersTopic(&trainer, f.Topic) {
			continue
		}

		m := TrainerMatch{Trainer: trainer}
		switch {
		case f.Online:
			m.OnlineInfo = &OnlineTrainingInfo{OffersOnline: trainer.OffersOnline()}
		case f.Lat != nil && f.Lon != nil:
			info := geo.MatchPhysical(trainer.Latitude, trainer.Longitude, trainer.TravelRadiusKm, *f.Lat, *f.Lon)
			m.DistanceInfo = &info
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func offersTopic(trainer *models.Trainer, topic string) bool {
	for _, t := range trainer.Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}
