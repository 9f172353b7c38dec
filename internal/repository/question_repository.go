package repository

import (
	"github.com/lshigami/Quokka/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(question *model.Question) error
	FindByQuizID(quizID string) ([]model.Question, error)
	FindByQuestionIDs(questionIDs []string) ([]model.Question, error)
	// FindBank returns bank-only questions (quiz_id IS NULL), optionally
	// filtered by topic tag.
	FindBank(topicTag string) ([]model.Question, error)
	// AssignToQuiz attaches bank questions to a quiz.
	AssignToQuiz(questionIDs []string, quizID string) error
	CountBank() (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByQuizID(quizID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("quiz_id = ?", quizID).Order("id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByQuestionIDs(questionIDs []string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("question_id IN ?", questionIDs).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindBank(topicTag string) ([]model.Question, error) {
	query := r.db.Where("quiz_id IS NULL")
	if topicTag != "" {
		query = query.Where("topic_tag ILIKE ?", "%"+topicTag+"%")
	}
	var questions []model.Question
	err := query.Order("id DESC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) AssignToQuiz(questionIDs []string, quizID string) error {
	return r.db.Model(&model.Question{}).
		Where("question_id IN ?", questionIDs).
		Update("quiz_id", quizID).
		Error
}

func (r *questionRepository) CountBank() (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Where("quiz_id IS NULL").Count(&n).Error
	return n, err
}
