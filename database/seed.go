package database

import (
	"fmt"

	"github.com/lshigami/Quokka/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedAchievements upserts the fixed achievement catalog. Idempotent, so it
// runs on every startup.
func SeedAchievements(db *gorm.DB) error {
	catalog := []model.Achievement{
		{ID: "first_quiz", Name: "First Steps", Description: "Complete your first quiz.", Icon: "🎯"},
		{ID: "first_review", Name: "Curious Mind", Description: "Review the answers of a quiz for the first time.", Icon: "🔍"},
		{ID: "perfect_score", Name: "Perfectionist", Description: "Score 100% on a quiz.", Icon: "🏆"},
		{ID: "level_up_2", Name: "Rising Star", Description: "Reach level 2.", Icon: "⭐"},
		{ID: "level_up_5", Name: "Quiz Master", Description: "Reach the maximum level.", Icon: "👑"},
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon"}),
	}).Create(&catalog).Error
	if err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	log.Info().Int("achievements", len(catalog)).Msg("Achievement catalog seeded")
	return nil
}
