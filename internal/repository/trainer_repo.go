package repository

import (
	"context"

	"github.com/trainermarkt/backend/internal/models"
	"gorm.io/gorm"
)

type TrainerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Trainer, error)
	FindByUserID(ctx context.Context, userID string) (*models.Trainer, error)
	Save(ctx context.Context, trainer *models.Trainer) error
	Search(ctx context.Context, maxRate *float64) ([]models.Trainer, error)
}

type trainerRepository struct {
	db *gorm.DB
}

func NewTrainerRepository(db *gorm.DB) TrainerRepository {
	return &trainerRepository{db: db}
}

func (r *trainerRepository) FindByID(ctx context.Context, id uint) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, id).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *trainerRepository) FindByUserID(ctx context.Context, userID string) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&trainer).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *trainerRepository) Save(ctx context.Context, trainer *models.Trainer) error {
	return r.db.WithContext(ctx).Save(trainer).Error
}

// Search applies the filters expressible in SQL; topic matching happens
// in the service because topics are stored serialized.
func (r *trainerRepository) Search(ctx context.Context, maxRate *float64) ([]models.Trainer, error) {
	var trainers []models.Trainer
	q := r.db.WithContext(ctx)
	if maxRate != nil {
		q = q.Where("daily_rate <= ?", *maxRate)
	}
	if err := q.Order("id ASC").Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}
