package service

import (
	"testing"

	"github.com/lshigami/Quokka/internal/dto"
	"github.com/stretchr/testify/assert"
)

// Validation happens before any repository call, so a zero-value service is
// enough to exercise the rejection paths.
func newValidationOnlyAdminService() *adminService {
	return &adminService{}
}

func TestAddQuestionToBank_MCQNeedsTwoOptions(t *testing.T) {
	s := newValidationOnlyAdminService()

	_, err := s.AddQuestionToBank(dto.QuestionCreateDTO{
		Text:          "Capital of Bangladesh?",
		Type:          "mcq",
		Options:       []string{"Dhaka"},
		CorrectAnswer: "Dhaka",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestAddQuestionToBank_MCQCorrectAnswerMustBeAnOption(t *testing.T) {
	s := newValidationOnlyAdminService()

	_, err := s.AddQuestionToBank(dto.QuestionCreateDTO{
		Text:          "Capital of Bangladesh?",
		Type:          "mcq",
		Options:       []string{"Chittagong", "Sylhet"},
		CorrectAnswer: "Dhaka",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestAddQuestionToBank_FillBlankRejectsOptions(t *testing.T) {
	s := newValidationOnlyAdminService()

	_, err := s.AddQuestionToBank(dto.QuestionCreateDTO{
		Text:          "____ is the capital of Bangladesh.",
		Type:          "fill_blank",
		Options:       []string{"Dhaka"},
		CorrectAnswer: "Dhaka",
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestAddQuestionToBank_UnknownType(t *testing.T) {
	s := newValidationOnlyAdminService()

	_, err := s.AddQuestionToBank(dto.QuestionCreateDTO{
		Text:          "Write an essay.",
		Type:          "essay",
		CorrectAnswer: "n/a",
	})
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}
