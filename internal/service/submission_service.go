package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService grades a quiz attempt and records every consequence of
// it (result row, XP grant, level change, achievements) in one transaction.
type SubmissionService interface {
	SubmitQuiz(quizID string, req dto.QuizSubmissionDTO) (*dto.SubmissionResultDTO, error)
}

type submissionService struct {
	participantRepo repository.ParticipantRepository
	quizRepo        repository.QuizRepository
	questionRepo    repository.QuestionRepository
	resultRepo      repository.ResultRepository
	gamification    GamificationService
	grader          AnswerGrader
	db              *gorm.DB
}

func NewSubmissionService(
	participantRepo repository.ParticipantRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	gamification GamificationService,
	grader AnswerGrader,
	db *gorm.DB,
) SubmissionService {
	return &submissionService{
		participantRepo: participantRepo,
		quizRepo:        quizRepo,
		questionRepo:    questionRepo,
		resultRepo:      resultRepo,
		gamification:    gamification,
		grader:          grader,
		db:              db,
	}
}

// attemptScore is the outcome of grading one submission before any state
// is touched.
type attemptScore struct {
	Score    int
	Total    int
	XPEarned int
}

// scoreAttempt grades every question of the quiz against the submitted
// answers. XP is XPPerCorrectAnswer per correct answer plus the completion
// bonus when the number of submitted entries equals the question count.
// The bonus keys off answer count, not correct count.
func scoreAttempt(grader AnswerGrader, questions []model.Question, answers map[string]string) attemptScore {
	out := attemptScore{Total: len(questions)}
	for i := range questions {
		answer, answered := answers[questions[i].QuestionID]
		if grader.Grade(&questions[i], answer, answered) {
			out.Score++
			out.XPEarned += XPPerCorrectAnswer
		}
	}
	if len(answers) == len(questions) {
		out.XPEarned += QuizCompletionBonusXP
	}
	return out
}

// SubmitQuiz is intentionally not idempotent: each call creates a new
// result and grants XP again. Duplicate-submission policy belongs to the
// caller. Achievement awards and review XP stay deduplicated regardless.
func (s *submissionService) SubmitQuiz(quizID string, req dto.QuizSubmissionDTO) (*dto.SubmissionResultDTO, error) {
	participant, err := s.participantRepo.FindByClassRoll(req.ClassName, req.Roll)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}

	quiz, err := s.quizRepo.FindByQuizID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %s: %w", quizID, err)
	}

	questions, err := s.questionRepo.FindByQuizID(quiz.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for quiz %s: %w", quizID, err)
	}
	if len(questions) == 0 {
		return nil, ErrQuizHasNoQuestions
	}

	scored := scoreAttempt(s.grader, questions, req.Answers)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submitted answers: %w", err)
	}

	resultID := newPublicID("RES")
	var leveledUp bool
	var newAchievements []string

	err = s.db.Transaction(func(tx *gorm.DB) error {
		result := model.Result{
			ResultID:         resultID,
			QuizID:           quiz.QuizID,
			ParticipantID:    participant.ID,
			Score:            scored.Score,
			TotalQuestions:   scored.Total,
			SubmittedAnswers: string(answersJSON),
		}
		if err := s.resultRepo.WithTx(tx).Create(&result); err != nil {
			return fmt.Errorf("failed to create result record: %w", err)
		}

		reason := fmt.Sprintf("Scored %d/%d in quiz %s", scored.Score, scored.Total, quiz.QuizID)
		leveledUp, err = s.gamification.AwardXP(tx, participant, scored.XPEarned, reason, nil)
		if err != nil {
			return err
		}

		newAchievements, err = s.gamification.EvaluateSubmissionRules(tx, AwardContext{
			Participant: participant,
			Score:       scored.Score,
			Total:       scored.Total,
		})
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Uint("participantID", participant.ID).Msg("SubmitQuiz: transaction rolled back")
		return nil, err
	}

	log.Info().
		Str("resultID", resultID).
		Uint("participantID", participant.ID).
		Int("score", scored.Score).
		Int("xpEarned", scored.XPEarned).
		Bool("leveledUp", leveledUp).
		Msg("Quiz submission recorded")

	if newAchievements == nil {
		newAchievements = []string{}
	}
	return &dto.SubmissionResultDTO{
		ResultID:        resultID,
		Score:           scored.Score,
		Total:           scored.Total,
		XPEarned:        scored.XPEarned,
		LeveledUp:       leveledUp,
		NewAchievements: newAchievements,
	}, nil
}

// newPublicID builds an external identifier like RES3F2A9C01D4B8.
func newPublicID(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
