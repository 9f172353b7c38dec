package service

import "errors"

var (
	// ErrParticipantNotFound is returned when a (class, roll) pair or
	// participant id does not resolve.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrQuizNotFound indicates the quiz id is unknown.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizHasNoQuestions indicates a submission against an empty quiz.
	ErrQuizHasNoQuestions = errors.New("quiz has no questions")
	// ErrResultNotFound indicates the result id is unknown.
	ErrResultNotFound = errors.New("result not found")
	// ErrClubNotFound indicates the club id is unknown.
	ErrClubNotFound = errors.New("club not found")
	// ErrQuestionNotInBank indicates a quiz referenced a question id that is
	// missing or already attached to another quiz.
	ErrQuestionNotInBank = errors.New("question not available in bank")
	// ErrInvalidQuestion indicates a question payload that fails semantic
	// validation, e.g. an mcq whose correct answer is not among its options.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrUnknownQuestionType indicates a question type outside the supported
	// set on create. Grading itself never errors: unknown types grade false.
	ErrUnknownQuestionType = errors.New("unknown question type")
	// ErrDuplicateGrant is returned when a deduplicated XP grant already
	// happened. Callers treat it as a benign no-op.
	ErrDuplicateGrant = errors.New("xp grant already recorded")
	// ErrGeneratorUnavailable is returned when no Gemini API key is set.
	ErrGeneratorUnavailable = errors.New("question generator not configured")
)
