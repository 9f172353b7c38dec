package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// notAnsweredLabel is shown in reviews for questions the student skipped.
const notAnsweredLabel = "Not Answered"

// StudentService serves the read side of the student experience plus the
// answer review, whose first view grants bonus XP.
type StudentService interface {
	Dashboard(key dto.ParticipantKeyDTO) (*dto.DashboardDTO, error)
	QuizDetails(quizID string) (*dto.QuizDetailDTO, error)
	// Review returns the per-question review for a result. The first review
	// by the owning participant grants ReviewXP and the first_review
	// achievement, deduplicated through the XP ledger.
	Review(resultID string) ([]dto.AnswerReviewDTO, error)
	GamificationProfile(key dto.ParticipantKeyDTO) (*dto.GamificationProfileDTO, error)
	Announcements(className string) ([]dto.AnnouncementDTO, error)
}

type studentService struct {
	participantRepo  repository.ParticipantRepository
	quizRepo         repository.QuizRepository
	questionRepo     repository.QuestionRepository
	resultRepo       repository.ResultRepository
	gamRepo          repository.GamificationRepository
	announcementRepo repository.AnnouncementRepository
	gamification     GamificationService
	grader           AnswerGrader
	db               *gorm.DB
}

func NewStudentService(
	participantRepo repository.ParticipantRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	gamRepo repository.GamificationRepository,
	announcementRepo repository.AnnouncementRepository,
	gamification GamificationService,
	grader AnswerGrader,
	db *gorm.DB,
) StudentService {
	return &studentService{
		participantRepo:  participantRepo,
		quizRepo:         quizRepo,
		questionRepo:     questionRepo,
		resultRepo:       resultRepo,
		gamRepo:          gamRepo,
		announcementRepo: announcementRepo,
		gamification:     gamification,
		grader:           grader,
		db:               db,
	}
}

func (s *studentService) Dashboard(key dto.ParticipantKeyDTO) (*dto.DashboardDTO, error) {
	participant, err := s.participantRepo.FindByClassRoll(key.ClassName, key.Roll)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}

	results, err := s.resultRepo.FindByParticipantID(participant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result history: %w", err)
	}
	completed := make(map[string]bool, len(results))
	for _, res := range results {
		completed[res.QuizID] = true
	}

	quizzes, err := s.quizRepo.FindActiveForClass(participant.ClassName)
	if err != nil {
		return nil, fmt.Errorf("failed to load active quizzes: %w", err)
	}

	activeQuizzes := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		if quizLockedFor(participant, quiz.UnlockCondition) {
			continue
		}
		activeQuizzes = append(activeQuizzes, dto.QuizSummaryDTO{
			QuizID:           quiz.QuizID,
			Title:            quiz.Title,
			ClubName:         quiz.Club.ClubName,
			ClubLogoURL:      quiz.Club.LogoURL,
			QuestionCount:    len(quiz.Questions),
			TimeLimitMinutes: quiz.TimeLimitMinutes,
			IsCompleted:      completed[quiz.QuizID],
			UnlockCondition:  quiz.UnlockCondition,
		})
	}

	history, err := s.buildHistory(results)
	if err != nil {
		return nil, err
	}

	awards, err := s.gamRepo.FindUserAchievements(participant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	badges := make([]dto.BadgeDTO, 0, len(awards))
	for _, ua := range awards {
		badges = append(badges, dto.BadgeDTO{
			ID:        ua.AchievementID,
			Name:      ua.Achievement.Name,
			Icon:      ua.Achievement.Icon,
			AwardedAt: ua.CreatedAt,
		})
	}

	return &dto.DashboardDTO{
		ActiveQuizzes: activeQuizzes,
		History:       history,
		Badges:        badges,
	}, nil
}

// quizLockedFor parses conditions like "level:3". Unknown or malformed
// conditions never lock a quiz out.
func quizLockedFor(participant *model.Participant, condition *string) bool {
	if condition == nil || *condition == "" {
		return false
	}
	parts := strings.SplitN(*condition, ":", 2)
	if len(parts) != 2 || parts[0] != "level" {
		return false
	}
	required, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return participant.Level < required
}

func (s *studentService) buildHistory(results []model.Result) ([]dto.HistoryEntryDTO, error) {
	quizIDs := make([]string, 0, len(results))
	seen := make(map[string]bool)
	for _, res := range results {
		if !seen[res.QuizID] {
			seen[res.QuizID] = true
			quizIDs = append(quizIDs, res.QuizID)
		}
	}

	titles := make(map[string]string, len(quizIDs))
	if len(quizIDs) > 0 {
		quizzes, err := s.quizRepo.FindByQuizIDs(quizIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load quiz titles: %w", err)
		}
		for _, quiz := range quizzes {
			titles[quiz.QuizID] = quiz.Title
		}
	}

	history := make([]dto.HistoryEntryDTO, 0, len(results))
	for _, res := range results {
		history = append(history, dto.HistoryEntryDTO{
			ResultID:       res.ResultID,
			QuizID:         res.QuizID,
			QuizTitle:      titles[res.QuizID],
			Score:          res.Score,
			TotalQuestions: res.TotalQuestions,
			SubmittedAt:    res.CreatedAt,
		})
	}
	return history, nil
}

func (s *studentService) QuizDetails(quizID string) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByQuizIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %s: %w", quizID, err)
	}

	questions := make([]dto.QuestionPublicDTO, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		var qDTO dto.QuestionPublicDTO
		if err := copier.Copy(&qDTO, &quiz.Questions[i]); err != nil {
			return nil, fmt.Errorf("failed to map question: %w", err)
		}
		if quiz.Questions[i].Type == model.QuestionTypeMCQ {
			qDTO.Options = quiz.Questions[i].OptionList()
		}
		questions = append(questions, qDTO)
	}

	return &dto.QuizDetailDTO{
		QuizID:           quiz.QuizID,
		Title:            quiz.Title,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		Questions:        questions,
	}, nil
}

func (s *studentService) Review(resultID string) ([]dto.AnswerReviewDTO, error) {
	result, err := s.resultRepo.FindByResultID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to load result %s: %w", resultID, err)
	}

	participant, err := s.participantRepo.FindByID(result.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant for result %s: %w", resultID, err)
	}

	if err := s.grantReviewBonus(participant, result); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.FindByQuizID(result.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for result %s: %w", resultID, err)
	}

	submitted := map[string]string{}
	if result.SubmittedAnswers != "" {
		if err := json.Unmarshal([]byte(result.SubmittedAnswers), &submitted); err != nil {
			return nil, fmt.Errorf("failed to decode submitted answers for result %s: %w", resultID, err)
		}
	}

	review := make([]dto.AnswerReviewDTO, 0, len(questions))
	for i := range questions {
		answer, answered := submitted[questions[i].QuestionID]
		displayed := answer
		if !answered {
			displayed = notAnsweredLabel
		}
		review = append(review, dto.AnswerReviewDTO{
			QuestionText:    questions[i].Text,
			SubmittedAnswer: displayed,
			CorrectAnswer:   questions[i].CorrectAnswer,
			Explanation:     questions[i].Explanation,
			IsCorrect:       s.grader.Grade(&questions[i], answer, answered),
		})
	}
	return review, nil
}

// grantReviewBonus awards the one-time review XP and the first_review
// achievement. The ledger dedup key makes repeat reviews no-ops, including
// under concurrent duplicate requests.
func (s *studentService) grantReviewBonus(participant *model.Participant, result *model.Result) error {
	key := "review:" + result.ResultID
	already, err := s.gamification.HasLedgerKey(participant.ID, key)
	if err != nil {
		return fmt.Errorf("failed to check review ledger: %w", err)
	}
	if already {
		return nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		reason := fmt.Sprintf("Reviewed result %s", result.ResultID)
		if _, err := s.gamification.AwardXP(tx, participant, ReviewXP, reason, &key); err != nil {
			return err
		}
		_, err := s.gamification.TryAwardAchievement(tx, participant.ID, AchievementFirstReview)
		return err
	})
	if errors.Is(err, ErrDuplicateGrant) {
		// Concurrent first review won the race; nothing to grant.
		return nil
	}
	if err != nil {
		log.Error().Err(err).Str("resultID", result.ResultID).Msg("Review: bonus grant rolled back")
		return err
	}
	return nil
}

func (s *studentService) GamificationProfile(key dto.ParticipantKeyDTO) (*dto.GamificationProfileDTO, error) {
	participant, err := s.participantRepo.FindByClassRoll(key.ClassName, key.Roll)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}

	catalog, err := s.gamRepo.FindAllAchievements()
	if err != nil {
		return nil, fmt.Errorf("failed to load achievement catalog: %w", err)
	}
	awards, err := s.gamRepo.FindUserAchievements(participant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	unlocked := make(map[string]bool, len(awards))
	for _, ua := range awards {
		unlocked[ua.AchievementID] = true
	}

	achievements := make([]dto.AchievementStatusDTO, 0, len(catalog))
	for _, a := range catalog {
		achievements = append(achievements, dto.AchievementStatusDTO{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    unlocked[a.ID],
		})
	}

	logs, err := s.gamRepo.FindXPLogs(participant.ID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to load xp history: %w", err)
	}
	recentXP := make([]dto.XPLogEntryDTO, 0, len(logs))
	for _, entry := range logs {
		recentXP = append(recentXP, dto.XPLogEntryDTO{
			Amount:    entry.Amount,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		})
	}

	return &dto.GamificationProfileDTO{
		XP:             participant.XP,
		Level:          participant.Level,
		CurrentLevelXP: LevelFloorXP(participant.Level),
		NextLevelXP:    NextLevelXP(participant.Level),
		Achievements:   achievements,
		RecentXP:       recentXP,
	}, nil
}

func (s *studentService) Announcements(className string) ([]dto.AnnouncementDTO, error) {
	announcements, err := s.announcementRepo.FindForClass(className, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}
	dtos := make([]dto.AnnouncementDTO, 0, len(announcements))
	for _, a := range announcements {
		var aDTO dto.AnnouncementDTO
		if err := copier.Copy(&aDTO, &a); err != nil {
			return nil, fmt.Errorf("failed to map announcement: %w", err)
		}
		dtos = append(dtos, aDTO)
	}
	return dtos, nil
}
