package dto

// ParticipantKeyDTO identifies a participant by the unique (class, roll)
// pair. Carried as query params on student endpoints.
type ParticipantKeyDTO struct {
	ClassName string `form:"class" json:"class_name" binding:"required"`
	Roll      string `form:"roll" json:"roll" binding:"required"`
}

// QuizSubmissionDTO is one completed attempt: the verbatim answers keyed by
// question_id. Unanswered questions are simply absent from the map.
type QuizSubmissionDTO struct {
	ClassName string            `json:"class_name" binding:"required"`
	Roll      string            `json:"roll" binding:"required"`
	Answers   map[string]string `json:"answers" binding:"required"`
}
