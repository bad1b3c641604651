package repository

import (
	"context"

	"github.com/trainermarkt/backend/internal/models"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, req *models.TrainingRequest) error
	FindByID(ctx context.Context, id uint) (*models.TrainingRequest, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.TrainingRequest, error)
	FindByTrainingID(ctx context.Context, trainingID uint, status *models.RequestStatus) ([]models.TrainingRequest, error)
	FindByTrainerID(ctx context.Context, trainerID uint) ([]models.TrainingRequest, error)
	FindByPair(ctx context.Context, tx *gorm.DB, trainingID, trainerID uint) (*models.TrainingRequest, error)
	FindPendingSiblings(ctx context.Context, tx *gorm.DB, trainingID, excludeID uint) ([]models.TrainingRequest, error)
	CountWon(ctx context.Context, tx *gorm.DB, trainingID uint) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, req *models.TrainingRequest) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, requestID uint, status models.RequestStatus) error
	GetDB() *gorm.DB
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *requestRepository) Create(ctx context.Context, tx *gorm.DB, req *models.TrainingRequest) error {
	return tx.WithContext(ctx).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uint) (*models.TrainingRequest, error) {
	var req models.TrainingRequest
	if err := r.db.WithContext(ctx).Preload("Training").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.TrainingRequest, error) {
	var req models.TrainingRequest
	if err := tx.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByTrainingID(ctx context.Context, trainingID uint, status *models.RequestStatus) ([]models.TrainingRequest, error) {
	var reqs []models.TrainingRequest
	q := r.db.WithContext(ctx).Where("training_id = ?", trainingID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requestRepository) FindByTrainerID(ctx context.Context, trainerID uint) ([]models.TrainingRequest, error) {
	var reqs []models.TrainingRequest
	err := r.db.WithContext(ctx).
		Preload("Training").
		Where("trainer_id = ?", trainerID).
		Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *requestRepository) FindByPair(ctx context.Context, tx *gorm.DB, trainingID, trainerID uint) (*models.TrainingRequest, error) {
	var req models.TrainingRequest
	err := tx.WithContext(ctx).
		Where("training_id = ? AND trainer_id = ?", trainingID, trainerID).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindPendingSiblings returns the other pending requests for a training,
// i.e. the ones that get auto-declined when one request is accepted.
func (r *requestRepository) FindPendingSiblings(ctx context.Context, tx *gorm.DB, trainingID, excludeID uint) ([]models.TrainingRequest, error) {
	var reqs []models.TrainingRequest
	err := tx.WithContext(ctx).
		Where("training_id = ? AND id <> ? AND status = ?", trainingID, excludeID, models.StatusPending).
		Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// CountWon counts the requests that already won the training, i.e. hold
// accepted or booked status. At most one such row may exist per training.
func (r *requestRepository) CountWon(ctx context.Context, tx *gorm.DB, trainingID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.TrainingRequest{}).
		Where("training_id = ? AND status IN ?", trainingID, []models.RequestStatus{models.StatusAccepted, models.StatusBooked}).
		Count(&count).Error
	return count, err
}

func (r *requestRepository) Save(ctx context.Context, tx *gorm.DB, req *models.TrainingRequest) error {
	return tx.WithContext(ctx).Save(req).Error
}

func (r *requestRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, requestID uint, status models.RequestStatus) error {
	return tx.WithContext(ctx).
		Model(&models.TrainingRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error
}
