package service

import (
	"github.com/lshigami/Quokka/internal/model"
)

// Achievement ids the catalog is seeded with.
const (
	AchievementFirstQuiz    = "first_quiz"
	AchievementFirstReview  = "first_review"
	AchievementPerfectScore = "perfect_score"
	AchievementLevel2       = "level_up_2"
	AchievementLevel5       = "level_up_5"
)

// AwardContext is the state an achievement rule sees after a submission has
// been graded and its XP applied. Participant carries the post-grant XP and
// level.
type AwardContext struct {
	Participant *model.Participant
	Score       int
	Total       int
}

// AchievementRule pairs an achievement id with its unlock predicate. Rules
// are evaluated in slice order after every scored submission; the award
// itself stays idempotent, so a rule may keep applying forever and still
// award only once. New achievements are added here, never in the
// submission path.
type AchievementRule struct {
	ID      string
	Applies func(AwardContext) bool
}

// SubmissionRules returns the fixed, ordered rule set evaluated after each
// submission. first_review is not here: it is triggered by the review path.
func SubmissionRules() []AchievementRule {
	return []AchievementRule{
		{
			// Dedup alone makes this first-submission-only.
			ID:      AchievementFirstQuiz,
			Applies: func(AwardContext) bool { return true },
		},
		{
			ID: AchievementPerfectScore,
			Applies: func(ctx AwardContext) bool {
				return ctx.Total > 0 && ctx.Score == ctx.Total
			},
		},
		{
			ID: AchievementLevel2,
			Applies: func(ctx AwardContext) bool {
				return ctx.Participant.Level >= 2
			},
		},
		{
			ID: AchievementLevel5,
			Applies: func(ctx AwardContext) bool {
				return ctx.Participant.Level >= 5
			},
		},
	}
}
