package service

import (
	"strings"

	"github.com/lshigami/Quokka/internal/model"
)

// AnswerGrader evaluates a single submitted answer against a question.
// Grading is a pure function: no state, no side effects, never panics.
type AnswerGrader interface {
	// Grade reports whether the answer is correct. answered is false when
	// the submission had no entry for this question, which always grades
	// incorrect.
	Grade(q *model.Question, answer string, answered bool) bool
}

type answerGrader struct{}

func NewAnswerGrader() AnswerGrader {
	return answerGrader{}
}

func (answerGrader) Grade(q *model.Question, answer string, answered bool) bool {
	if !answered {
		return false
	}
	switch q.Type {
	case model.QuestionTypeMCQ:
		// Options are opaque strings; byte-for-byte match, no normalization.
		return answer == q.CorrectAnswer
	case model.QuestionTypeFillBlank:
		// Trimmed, case-insensitive. "Dhaka ", "dhaka" and "DHAKA" all
		// match a stored "Dhaka".
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}
