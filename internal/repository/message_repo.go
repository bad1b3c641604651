package repository

import (
	"context"

	"github.com/trainermarkt/backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, tx *gorm.DB, msg *models.Message) error
	FindByTrainerID(ctx context.Context, trainerID uint) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, tx *gorm.DB, msg *models.Message) error {
	return tx.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) FindByTrainerID(ctx context.Context, trainerID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("id DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
