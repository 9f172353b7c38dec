package repository

import (
	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	WithTx(tx *gorm.DB) ResultRepository
	Create(result *model.Result) error
	FindByResultID(resultID string) (*model.Result, error)
	FindByParticipantID(participantID uint) ([]model.Result, error)
	FindRecentWithNames(limit int) ([]ResultWithName, error)
	Count() (int64, error)
}

// ResultWithName joins a result with the submitting participant's name,
// for admin dashboards.
type ResultWithName struct {
	model.Result
	StudentName string
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) WithTx(tx *gorm.DB) ResultRepository {
	return &resultRepository{db: tx}
}

func (r *resultRepository) Create(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindByResultID(resultID string) (*model.Result, error) {
	var result model.Result
	if err := r.db.Where("result_id = ?", resultID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByParticipantID(participantID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}

func (r *resultRepository) FindRecentWithNames(limit int) ([]ResultWithName, error) {
	var rows []ResultWithName
	err := r.db.Model(&model.Result{}).
		Select("results.*, participants.name AS student_name").
		Joins("JOIN participants ON participants.id = results.participant_id").
		Order("results.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Result{}).Count(&n).Error
	return n, err
}
