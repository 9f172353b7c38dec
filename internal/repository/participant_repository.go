package repository

import (
	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) ParticipantRepository
	Create(p *model.Participant) error
	FindByID(id uint) (*model.Participant, error)
	FindByClassRoll(className, roll string) (*model.Participant, error)
	FindTopByXP(limit int) ([]model.Participant, error)
	IncrementXP(id uint, amount int) error
	UpdateLevel(id uint, level int) error
	Count() (int64, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) WithTx(tx *gorm.DB) ParticipantRepository {
	return &participantRepository{db: tx}
}

func (r *participantRepository) Create(p *model.Participant) error {
	return r.db.Create(p).Error
}

func (r *participantRepository) FindByID(id uint) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) FindByClassRoll(className, roll string) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.Where("class_name = ? AND roll = ?", className, roll).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) FindTopByXP(limit int) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.Order("xp DESC, name ASC").Limit(limit).Find(&participants).Error
	return participants, err
}

// IncrementXP bumps xp atomically in SQL so concurrent grants never lose
// an update.
func (r *participantRepository) IncrementXP(id uint, amount int) error {
	return r.db.Model(&model.Participant{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", amount)).
		Error
}

func (r *participantRepository) UpdateLevel(id uint, level int) error {
	return r.db.Model(&model.Participant{}).
		Where("id = ?", id).
		Update("level", level).
		Error
}

func (r *participantRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Participant{}).Count(&n).Error
	return n, err
}
