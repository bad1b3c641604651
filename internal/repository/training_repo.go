package repository

import (
	"context"

	"github.com/trainermarkt/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrainingRepository interface {
	Create(ctx context.Context, training *models.Training) error
	FindByID(ctx context.Context, id uint) (*models.Training, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Training, error)
	FindAll(ctx context.Context) ([]models.Training, error)
}

type trainingRepository struct {
	db *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

func (r *trainingRepository) Create(ctx context.Context, training *models.Training) error {
	return r.db.WithContext(ctx).Create(training).Error
}

func (r *trainingRepository) FindByID(ctx context.Context, id uint) (*models.Training, error) {
	var training models.Training
	if err := r.db.WithContext(ctx).First(&training, id).Error; err != nil {
		return nil, err
	}
	return &training, nil
}

// FindByIDForUpdate acquires a row-level lock on the training within the
// given transaction. All negotiation transitions for a training serialize
// on this lock.
func (r *trainingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Training, error) {
	var training models.Training
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&training, id).Error; err != nil {
		return nil, err
	}
	return &training, nil
}

func (r *trainingRepository) FindAll(ctx context.Context) ([]models.Training, error) {
	var trainings []models.Training
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&trainings).Error; err != nil {
		return nil, err
	}
	return trainings, nil
}
