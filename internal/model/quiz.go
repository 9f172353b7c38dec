package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuizStatusPending  = "pending"
	QuizStatusActive   = "active"
	QuizStatusArchived = "archived"
)

// AssignedClassesAll assigns a quiz to every class.
const AssignedClassesAll = "All"

type Quiz struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	QuizID           string         `json:"quiz_id" gorm:"not null;uniqueIndex"`
	Title            string         `json:"title" gorm:"not null"`
	ClubID           string         `json:"club_id" gorm:"not null;index"`
	Club             Club           `json:"club,omitempty" gorm:"foreignKey:ClubID;references:ClubID"`
	Status           string         `json:"status" gorm:"not null;default:'pending'"`
	AssignedClasses  string         `json:"assigned_classes" gorm:"not null;default:'All'"`
	TimeLimitMinutes int            `json:"time_limit_minutes" gorm:"not null;default:10"`
	ScheduledAt      *time.Time     `json:"scheduled_at,omitempty"`
	UnlockCondition  *string        `json:"unlock_condition,omitempty"` // e.g. "level:3"
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;references:QuizID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
