package models

import "time"

type LocationType string

const (
	LocationOnline   LocationType = "online"
	LocationPhysical LocationType = "physical"
)

type Training struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CompanyID    string       `gorm:"not null;index" json:"company_id"`
	Title        string       `gorm:"not null" json:"title"`
	Topic        string       `gorm:"not null" json:"topic"`
	DailyRate    float64      `gorm:"not null" json:"daily_rate"`
	StartAt      time.Time    `json:"start_at"`
	DurationDays int          `json:"duration_days"`
	LocationType LocationType `gorm:"type:varchar(20);not null" json:"location_type"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
