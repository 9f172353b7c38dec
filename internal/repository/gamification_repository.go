package repository

import (
	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

// GamificationRepository persists the XP ledger and achievement awards.
// Inserts rely on the unique indexes declared on the models: duplicate
// awards come back as gorm.ErrDuplicatedKey for the service to absorb.
type GamificationRepository interface {
	WithTx(tx *gorm.DB) GamificationRepository
	CreateXPLog(entry *model.XPLog) error
	HasDedupKey(participantID uint, key string) (bool, error)
	FindXPLogs(participantID uint, limit int) ([]model.XPLog, error)
	CreateUserAchievement(ua *model.UserAchievement) error
	HasAchievement(participantID uint, achievementID string) (bool, error)
	FindUserAchievements(participantID uint) ([]model.UserAchievement, error)
	FindAllAchievements() ([]model.Achievement, error)
}

type gamificationRepository struct {
	db *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: db}
}

func (r *gamificationRepository) WithTx(tx *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: tx}
}

func (r *gamificationRepository) CreateXPLog(entry *model.XPLog) error {
	return r.db.Create(entry).Error
}

func (r *gamificationRepository) HasDedupKey(participantID uint, key string) (bool, error) {
	var n int64
	err := r.db.Model(&model.XPLog{}).
		Where("participant_id = ? AND dedup_key = ?", participantID, key).
		Count(&n).Error
	return n > 0, err
}

func (r *gamificationRepository) FindXPLogs(participantID uint, limit int) ([]model.XPLog, error) {
	var logs []model.XPLog
	err := r.db.
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *gamificationRepository) CreateUserAchievement(ua *model.UserAchievement) error {
	return r.db.Create(ua).Error
}

func (r *gamificationRepository) HasAchievement(participantID uint, achievementID string) (bool, error) {
	var n int64
	err := r.db.Model(&model.UserAchievement{}).
		Where("participant_id = ? AND achievement_id = ?", participantID, achievementID).
		Count(&n).Error
	return n > 0, err
}

func (r *gamificationRepository) FindUserAchievements(participantID uint) ([]model.UserAchievement, error) {
	var awards []model.UserAchievement
	err := r.db.
		Preload("Achievement").
		Where("participant_id = ?", participantID).
		Order("created_at ASC").
		Find(&awards).Error
	return awards, err
}

func (r *gamificationRepository) FindAllAchievements() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.db.Order("id ASC").Find(&achievements).Error
	return achievements, err
}
