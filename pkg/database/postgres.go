package database

import (
	"log"
	"time"

	"github.com/trainermarkt/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(
		&models.Trainer{},
		&models.Training{},
		&models.TrainingRequest{},
		&models.Message{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exactly one request per (training, trainer) pair
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_request_pair
		ON training_requests (training_id, trainer_id)
	`)

	return db
}
