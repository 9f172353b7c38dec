package model

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a student account. XP and Level are mutated only by the
// gamification service; Level always equals the level implied by XP.
type Participant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ClassName string         `json:"class_name" gorm:"not null;uniqueIndex:idx_participants_class_roll"`
	Roll      string         `json:"roll" gorm:"not null;uniqueIndex:idx_participants_class_roll"`
	Name      string         `json:"name" gorm:"not null"`
	PIN       string         `json:"-" gorm:"column:pin;not null"`
	XP        int            `json:"xp" gorm:"not null;default:0"`
	Level     int            `json:"level" gorm:"not null;default:1"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
