package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// XPPerCorrectAnswer is granted once per correctly graded question.
	XPPerCorrectAnswer = 10
	// QuizCompletionBonusXP is granted when every question has a submitted
	// answer. The trigger is answer count, not correctness: a fully answered
	// but fully wrong attempt still earns it. Intentional product behavior.
	QuizCompletionBonusXP = 50
	// ReviewXP is granted the first time a participant reviews a result.
	ReviewXP = 20
)

type levelThreshold struct {
	Level int
	MinXP int
}

// levelThresholds is the fixed ascending level table. A participant's level
// is the highest entry whose MinXP does not exceed their XP, capped at the
// last entry.
var levelThresholds = []levelThreshold{
	{Level: 1, MinXP: 0},
	{Level: 2, MinXP: 250},
	{Level: 3, MinXP: 600},
	{Level: 4, MinXP: 1200},
	{Level: 5, MinXP: 2000},
}

// ResolveLevel maps an XP total onto the level table.
func ResolveLevel(xp int) int {
	level := levelThresholds[0].Level
	for _, t := range levelThresholds {
		if xp >= t.MinXP {
			level = t.Level
		}
	}
	return level
}

// LevelFloorXP returns the XP threshold of the given level, and the floor of
// the highest level when asked past the table's end. Used for progress bars.
func LevelFloorXP(level int) int {
	floor := levelThresholds[0].MinXP
	for _, t := range levelThresholds {
		if t.Level <= level {
			floor = t.MinXP
		}
	}
	return floor
}

// NextLevelXP returns the threshold of the level after the given one, or the
// top threshold when already at the cap.
func NextLevelXP(level int) int {
	for _, t := range levelThresholds {
		if t.Level > level {
			return t.MinXP
		}
	}
	return levelThresholds[len(levelThresholds)-1].MinXP
}

// GamificationService is the XP/level engine and the achievement engine.
// Every mutating method takes the caller's transaction handle so an entire
// scoring event commits or rolls back as one unit.
type GamificationService interface {
	// AwardXP increments the participant's XP, resolves level transitions
	// and appends one ledger entry, atomically within tx. A non-nil dedupKey
	// makes the grant one-shot per participant: if the key was already
	// recorded, nothing is granted and ErrDuplicateGrant is returned.
	// On success the participant's XP and Level fields are refreshed in
	// place and leveledUp reports a strict level increase.
	AwardXP(tx *gorm.DB, participant *model.Participant, amount int, reason string, dedupKey *string) (leveledUp bool, err error)

	// TryAwardAchievement awards at most once per (participant, achievement)
	// pair. Returns false with no error both when the pair already exists
	// and when a concurrent insert wins the race.
	TryAwardAchievement(tx *gorm.DB, participantID uint, achievementID string) (bool, error)

	// EvaluateSubmissionRules runs the ordered achievement rules for one
	// scored submission and returns the ids newly awarded, in rule order.
	EvaluateSubmissionRules(tx *gorm.DB, ctx AwardContext) ([]string, error)

	// HasLedgerKey reports whether a dedup key was already recorded for the
	// participant. A pre-check only; AwardXP remains the real guard.
	HasLedgerKey(participantID uint, key string) (bool, error)
}

type gamificationService struct {
	participantRepo repository.ParticipantRepository
	gamRepo         repository.GamificationRepository
	rules           []AchievementRule
}

func NewGamificationService(
	participantRepo repository.ParticipantRepository,
	gamRepo repository.GamificationRepository,
) GamificationService {
	return &gamificationService{
		participantRepo: participantRepo,
		gamRepo:         gamRepo,
		rules:           SubmissionRules(),
	}
}

func (s *gamificationService) AwardXP(tx *gorm.DB, participant *model.Participant, amount int, reason string, dedupKey *string) (bool, error) {
	// Ledger first: for deduplicated grants the unique index on
	// (participant_id, dedup_key) decides whether this grant happens at all.
	entry := model.XPLog{
		ParticipantID: participant.ID,
		Amount:        amount,
		Reason:        reason,
		DedupKey:      dedupKey,
	}
	if err := s.gamRepo.WithTx(tx).CreateXPLog(&entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrDuplicateGrant
		}
		return false, fmt.Errorf("failed to append xp ledger entry: %w", err)
	}

	if err := s.participantRepo.WithTx(tx).IncrementXP(participant.ID, amount); err != nil {
		return false, fmt.Errorf("failed to increment xp: %w", err)
	}

	fresh, err := s.participantRepo.WithTx(tx).FindByID(participant.ID)
	if err != nil {
		return false, fmt.Errorf("failed to reload participant after xp grant: %w", err)
	}

	newLevel := ResolveLevel(fresh.XP)
	leveledUp := newLevel > fresh.Level
	if leveledUp {
		if err := s.participantRepo.WithTx(tx).UpdateLevel(participant.ID, newLevel); err != nil {
			return false, fmt.Errorf("failed to persist level up: %w", err)
		}
		log.Info().Uint("participantID", participant.ID).Int("level", newLevel).Msg("Participant leveled up")
	}

	participant.XP = fresh.XP
	if newLevel > participant.Level {
		participant.Level = newLevel
	}
	return leveledUp, nil
}

func (s *gamificationService) TryAwardAchievement(tx *gorm.DB, participantID uint, achievementID string) (bool, error) {
	repo := s.gamRepo.WithTx(tx)

	// Cheap pre-check; the unique index below is the actual guarantee.
	exists, err := repo.HasAchievement(participantID, achievementID)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement %q: %w", achievementID, err)
	}
	if exists {
		return false, nil
	}

	ua := model.UserAchievement{ParticipantID: participantID, AchievementID: achievementID}
	if err := repo.CreateUserAchievement(&ua); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent award of the same pair.
			return false, nil
		}
		return false, fmt.Errorf("failed to award achievement %q: %w", achievementID, err)
	}

	log.Info().Uint("participantID", participantID).Str("achievement", achievementID).Msg("Achievement unlocked")
	return true, nil
}

func (s *gamificationService) EvaluateSubmissionRules(tx *gorm.DB, ctx AwardContext) ([]string, error) {
	var newlyAwarded []string
	for _, rule := range s.rules {
		if !rule.Applies(ctx) {
			continue
		}
		awarded, err := s.TryAwardAchievement(tx, ctx.Participant.ID, rule.ID)
		if err != nil {
			return nil, err
		}
		if awarded {
			newlyAwarded = append(newlyAwarded, rule.ID)
		}
	}
	return newlyAwarded, nil
}

func (s *gamificationService) HasLedgerKey(participantID uint, key string) (bool, error) {
	return s.gamRepo.HasDedupKey(participantID, key)
}
