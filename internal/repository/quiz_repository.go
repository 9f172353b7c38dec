package repository

import (
	"time"

	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository
	Create(quiz *model.Quiz) error
	FindByQuizID(quizID string) (*model.Quiz, error)
	FindByQuizIDWithQuestions(quizID string) (*model.Quiz, error)
	FindActiveForClass(className string) ([]model.Quiz, error)
	FindByQuizIDs(quizIDs []string) ([]model.Quiz, error)
	UpdateStatus(quizID, status string) error
	ActivateDue(now time.Time) (int64, error)
	Count() (int64, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	return &quizRepository{db: tx}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByQuizID(quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.Where("quiz_id = ?", quizID).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByQuizIDWithQuestions(quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions").
		Where("quiz_id = ?", quizID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindActiveForClass(className string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Preload("Club").
		Preload("Questions").
		Where("status = ?", model.QuizStatusActive).
		Where("assigned_classes = ? OR assigned_classes LIKE ?", model.AssignedClassesAll, "%"+className+"%").
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) FindByQuizIDs(quizIDs []string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Where("quiz_id IN ?", quizIDs).Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepository) UpdateStatus(quizID, status string) error {
	return r.db.Model(&model.Quiz{}).
		Where("quiz_id = ?", quizID).
		Update("status", status).
		Error
}

// ActivateDue flips pending quizzes whose scheduled time has passed to
// active. Returns the number of quizzes activated.
func (r *quizRepository) ActivateDue(now time.Time) (int64, error) {
	res := r.db.Model(&model.Quiz{}).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", model.QuizStatusPending, now).
		Update("status", model.QuizStatusActive)
	return res.RowsAffected, res.Error
}

func (r *quizRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Quiz{}).Count(&n).Error
	return n, err
}
