package model

import (
	"time"
)

// Achievement is static catalog data, seeded at startup.
type Achievement struct {
	ID          string `gorm:"primarykey" json:"id"` // e.g. "first_quiz"
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Icon        string `json:"icon" gorm:"not null"`
}

// UserAchievement links a participant to an unlocked achievement. The
// composite unique index is the at-most-once guarantee: two concurrent
// awards for the same pair cannot both insert.
type UserAchievement struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	ParticipantID uint        `json:"participant_id" gorm:"not null;uniqueIndex:idx_user_achievements_pair"`
	AchievementID string      `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievements_pair"`
	Achievement   Achievement `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
	CreatedAt     time.Time   `json:"created_at"`
}
