package model

import (
	"time"

	"gorm.io/gorm"
)

type Club struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ClubID    string         `json:"club_id" gorm:"not null;uniqueIndex"`
	ClubName  string         `json:"club_name" gorm:"not null"`
	LogoURL   string         `json:"logo_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
