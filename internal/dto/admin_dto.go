package dto

import "time"

// QuestionCreateDTO adds a question to the bank. Options and CorrectAnswer
// semantics depend on Type: mcq requires at least two options and the correct
// answer must be one of them; fill_blank takes no options.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=mcq fill_blank"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Explanation   string   `json:"explanation"`
	TopicTag      string   `json:"topic_tag"`
	ImageURL      *string  `json:"image_url"`
}

// QuizCreateDTO creates a quiz from existing bank questions.
type QuizCreateDTO struct {
	Title            string     `json:"title" binding:"required"`
	ClubID           string     `json:"club_id" binding:"required"`
	TimeLimitMinutes int        `json:"time_limit_minutes" binding:"required,gt=0"`
	AssignedClasses  string     `json:"assigned_classes"`
	UnlockCondition  *string    `json:"unlock_condition"` // e.g. "level:3"
	ScheduledAt      *time.Time `json:"scheduled_at"`
	QuestionIDs      []string   `json:"question_ids" binding:"required,min=1"`
}

type QuizStatusUpdateDTO struct {
	Status string `json:"status" binding:"required,oneof=pending active archived"`
}

type ParticipantCreateDTO struct {
	ClassName string `json:"class_name" binding:"required"`
	Roll      string `json:"roll" binding:"required"`
	Name      string `json:"name" binding:"required"`
	PIN       string `json:"pin" binding:"required"`
}

type ClubCreateDTO struct {
	ClubID   string `json:"club_id" binding:"required"`
	ClubName string `json:"club_name" binding:"required"`
	LogoURL  string `json:"logo_url"`
}

type AnnouncementCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	TargetClass string `json:"target_class"`
	CreatedBy   string `json:"created_by"`
}

// QuestionBankItemDTO is a bank question as listed to admins (answers shown).
type QuestionBankItemDTO struct {
	QuestionID    string   `json:"question_id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	TopicTag      string   `json:"topic_tag,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// RecentResultDTO is one row of recent activity on the admin dashboard.
type RecentResultDTO struct {
	StudentName string    `json:"student_name"`
	QuizID      string    `json:"quiz_id"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// DashboardStatsDTO is the admin overview.
type DashboardStatsDTO struct {
	Students        int64             `json:"students"`
	Quizzes         int64             `json:"quizzes"`
	Results         int64             `json:"results"`
	QuestionsInBank int64             `json:"questions_in_bank"`
	RecentActivity  []RecentResultDTO `json:"recent_activity"`
}

// QuestionDraftRequestDTO asks the AI generator for draft mcq questions.
type QuestionDraftRequestDTO struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count" binding:"required,min=1,max=10"`
}

// QuestionDraftDTO is a generated draft; admins review it before it is
// added to the bank through the normal create endpoint.
type QuestionDraftDTO struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}
