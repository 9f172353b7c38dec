package model

import (
	"time"
)

// Result is the immutable record of one completed quiz submission.
// SubmittedAnswers stores the verbatim answers keyed by question_id as JSON.
// Rows are created exactly once per submission and never updated.
type Result struct {
	ID               uint        `gorm:"primarykey" json:"id"`
	ResultID         string      `json:"result_id" gorm:"not null;uniqueIndex"`
	QuizID           string      `json:"quiz_id" gorm:"not null;index"`
	ParticipantID    uint        `json:"participant_id" gorm:"not null;index"`
	Participant      Participant `json:"-" gorm:"foreignKey:ParticipantID"`
	Score            int         `json:"score" gorm:"not null"`
	TotalQuestions   int         `json:"total_questions" gorm:"not null"`
	SubmittedAnswers string      `json:"-" gorm:"type:text"`
	CreatedAt        time.Time   `json:"created_at"`
}
