package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ       = "mcq"
	QuestionTypeFillBlank = "fill_blank"
)

// Question belongs to a quiz, or to the question bank when QuizID is nil.
// For mcq questions Options holds a JSON array of option strings and
// CorrectAnswer must be one of them.
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuestionID    string         `json:"question_id" gorm:"not null;uniqueIndex"`
	QuizID        *string        `json:"quiz_id,omitempty" gorm:"index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Type          string         `json:"type" gorm:"not null;default:'mcq'"`
	ImageURL      *string        `json:"image_url,omitempty"`
	TopicTag      string         `json:"topic_tag,omitempty"`
	Options       string         `json:"-" gorm:"type:text"` // JSON array for mcq
	CorrectAnswer string         `json:"-" gorm:"type:text;not null"`
	Explanation   string         `json:"explanation,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionList decodes the stored options. Returns nil for non-mcq questions
// or malformed data; grading never depends on it.
func (q *Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil
	}
	return opts
}
