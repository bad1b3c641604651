//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/trainermarkt/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "trainermarkt_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	testDB.Exec("DROP TABLE IF EXISTS messages")
	testDB.Exec("DROP TABLE IF EXISTS training_requests")
	testDB.Exec("DROP TABLE IF EXISTS trainings")
	testDB.Exec("DROP TABLE IF EXISTS trainers")

	if err := testDB.AutoMigrate(
		&models.Trainer{},
		&models.Training{},
		&models.TrainingRequest{},
		&models.Message{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_request_pair
		ON training_requests (training_id, trainer_id)
	`)

	code := m.Run()

	testDB.Exec("DROP TABLE IF EXISTS messages")
	testDB.Exec("DROP TABLE IF EXISTS training_requests")
	testDB.Exec("DROP TABLE IF EXISTS trainings")
	testDB.Exec("DROP TABLE IF EXISTS trainers")

	os.Exit(code)
}

func cleanTables() {
	testDB.Exec("DELETE FROM messages")
	testDB.Exec("DELETE FROM training_requests")
	testDB.Exec("DELETE FROM trainings")
	testDB.Exec("DELETE FROM trainers")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
