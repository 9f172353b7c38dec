package dto

import "time"

// QuestionPublicDTO is a question as shown to a student taking a quiz.
// The correct answer and explanation are never included here.
type QuestionPublicDTO struct {
	QuestionID string   `json:"question_id"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	ImageURL   *string  `json:"image_url,omitempty"`
	Options    []string `json:"options,omitempty"`
}

// QuizDetailDTO is the playable view of a quiz.
type QuizDetailDTO struct {
	QuizID           string              `json:"quiz_id"`
	Title            string              `json:"title"`
	TimeLimitMinutes int                 `json:"time_limit_minutes"`
	Questions        []QuestionPublicDTO `json:"questions"`
}

// QuizSummaryDTO is one entry on the student dashboard.
type QuizSummaryDTO struct {
	QuizID           string  `json:"quiz_id"`
	Title            string  `json:"title"`
	ClubName         string  `json:"club_name,omitempty"`
	ClubLogoURL      string  `json:"club_logo_url,omitempty"`
	QuestionCount    int     `json:"question_count"`
	TimeLimitMinutes int     `json:"time_limit_minutes"`
	IsCompleted      bool    `json:"is_completed"`
	UnlockCondition  *string `json:"unlock_condition,omitempty"`
}

// SubmissionResultDTO is what a student sees right after submitting.
type SubmissionResultDTO struct {
	ResultID        string   `json:"result_id"`
	Score           int      `json:"score"`
	Total           int      `json:"total"`
	XPEarned        int      `json:"xp_earned"`
	LeveledUp       bool     `json:"leveled_up"`
	NewAchievements []string `json:"new_achievements"`
}

// AnswerReviewDTO is one row of the per-question answer review.
type AnswerReviewDTO struct {
	QuestionText    string `json:"question_text"`
	SubmittedAnswer string `json:"submitted_answer"`
	CorrectAnswer   string `json:"correct_answer"`
	Explanation     string `json:"explanation,omitempty"`
	IsCorrect       bool   `json:"is_correct"`
}

// HistoryEntryDTO is one past result in the student's history.
type HistoryEntryDTO struct {
	ResultID       string    `json:"result_id"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// BadgeDTO is an unlocked achievement on the dashboard.
type BadgeDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	AwardedAt time.Time `json:"awarded_at"`
}

// DashboardDTO aggregates everything the student landing page needs.
type DashboardDTO struct {
	ActiveQuizzes []QuizSummaryDTO  `json:"active_quizzes"`
	History       []HistoryEntryDTO `json:"history"`
	Badges        []BadgeDTO        `json:"badges"`
}

// AchievementStatusDTO is a catalog entry plus the participant's unlock flag.
type AchievementStatusDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// XPLogEntryDTO is one recent XP grant shown on the profile.
type XPLogEntryDTO struct {
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// GamificationProfileDTO is the XP/level/achievement panel.
type GamificationProfileDTO struct {
	XP             int                    `json:"xp"`
	Level          int                    `json:"level"`
	CurrentLevelXP int                    `json:"current_level_xp"`
	NextLevelXP    int                    `json:"next_level_xp"`
	Achievements   []AchievementStatusDTO `json:"achievements"`
	RecentXP       []XPLogEntryDTO        `json:"recent_xp"`
}

// LeaderboardEntryDTO is one ranked row. Ties share a rank.
type LeaderboardEntryDTO struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	XP        int    `json:"xp"`
}

// AnnouncementDTO is a published announcement visible to a class.
type AnnouncementDTO struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
