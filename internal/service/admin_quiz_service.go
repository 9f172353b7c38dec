package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService covers quiz authoring, the question bank, participant and
// club onboarding, announcements, and the admin dashboard.
type AdminService interface {
	CreateQuiz(req dto.QuizCreateDTO) (*model.Quiz, error)
	SetQuizStatus(quizID, status string) error
	// ActivateDueQuizzes promotes scheduled pending quizzes whose time has
	// come and returns how many were activated.
	ActivateDueQuizzes() (int64, error)
	AddQuestionToBank(req dto.QuestionCreateDTO) (*model.Question, error)
	QuestionBank(topicTag string) ([]dto.QuestionBankItemDTO, error)
	AddParticipant(req dto.ParticipantCreateDTO) (*model.Participant, error)
	CreateClub(req dto.ClubCreateDTO) (*model.Club, error)
	PostAnnouncement(req dto.AnnouncementCreateDTO) (*model.Announcement, error)
	DashboardStats() (*dto.DashboardStatsDTO, error)
}

type adminService struct {
	quizRepo         repository.QuizRepository
	questionRepo     repository.QuestionRepository
	participantRepo  repository.ParticipantRepository
	clubRepo         repository.ClubRepository
	resultRepo       repository.ResultRepository
	announcementRepo repository.AnnouncementRepository
	db               *gorm.DB
}

func NewAdminService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	participantRepo repository.ParticipantRepository,
	clubRepo repository.ClubRepository,
	resultRepo repository.ResultRepository,
	announcementRepo repository.AnnouncementRepository,
	db *gorm.DB,
) AdminService {
	return &adminService{
		quizRepo:         quizRepo,
		questionRepo:     questionRepo,
		participantRepo:  participantRepo,
		clubRepo:         clubRepo,
		resultRepo:       resultRepo,
		announcementRepo: announcementRepo,
		db:               db,
	}
}

func (s *adminService) CreateQuiz(req dto.QuizCreateDTO) (*model.Quiz, error) {
	if _, err := s.clubRepo.FindByClubID(req.ClubID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to load club %s: %w", req.ClubID, err)
	}

	// Every referenced question must still be unattached bank stock.
	questions, err := s.questionRepo.FindByQuestionIDs(req.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz questions: %w", err)
	}
	available := make(map[string]bool, len(questions))
	for i := range questions {
		if questions[i].QuizID == nil {
			available[questions[i].QuestionID] = true
		}
	}
	for _, id := range req.QuestionIDs {
		if !available[id] {
			return nil, fmt.Errorf("%w: %s", ErrQuestionNotInBank, id)
		}
	}

	assigned := req.AssignedClasses
	if assigned == "" {
		assigned = model.AssignedClassesAll
	}
	status := model.QuizStatusPending
	if req.ScheduledAt == nil {
		status = model.QuizStatusActive
	}

	quiz := &model.Quiz{
		QuizID:           newPublicID("QZ"),
		Title:            req.Title,
		ClubID:           req.ClubID,
		Status:           status,
		AssignedClasses:  assigned,
		TimeLimitMinutes: req.TimeLimitMinutes,
		ScheduledAt:      req.ScheduledAt,
		UnlockCondition:  req.UnlockCondition,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.quizRepo.WithTx(tx).Create(quiz); err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		if err := s.questionRepo.WithTx(tx).AssignToQuiz(req.QuestionIDs, quiz.QuizID); err != nil {
			return fmt.Errorf("failed to attach questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("quizID", quiz.QuizID).Int("questions", len(req.QuestionIDs)).Msg("CreateQuiz: quiz created")
	return quiz, nil
}

func (s *adminService) SetQuizStatus(quizID, status string) error {
	if _, err := s.quizRepo.FindByQuizID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return fmt.Errorf("failed to load quiz %s: %w", quizID, err)
	}
	if err := s.quizRepo.UpdateStatus(quizID, status); err != nil {
		return fmt.Errorf("failed to update quiz status: %w", err)
	}
	log.Info().Str("quizID", quizID).Str("status", status).Msg("SetQuizStatus: status changed")
	return nil
}

func (s *adminService) ActivateDueQuizzes() (int64, error) {
	n, err := s.quizRepo.ActivateDue(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to activate scheduled quizzes: %w", err)
	}
	if n > 0 {
		log.Info().Int64("activated", n).Msg("ActivateDueQuizzes: scheduled quizzes went live")
	}
	return n, nil
}

func (s *adminService) AddQuestionToBank(req dto.QuestionCreateDTO) (*model.Question, error) {
	question := &model.Question{
		QuestionID:    newPublicID("QNB"),
		Text:          req.Text,
		Type:          req.Type,
		ImageURL:      req.ImageURL,
		TopicTag:      req.TopicTag,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}

	switch req.Type {
	case model.QuestionTypeMCQ:
		if len(req.Options) < 2 {
			return nil, fmt.Errorf("%w: mcq needs at least two options", ErrInvalidQuestion)
		}
		found := false
		for _, opt := range req.Options {
			if opt == req.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: correct answer is not among the options", ErrInvalidQuestion)
		}
		encoded, err := json.Marshal(req.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to encode options: %w", err)
		}
		question.Options = string(encoded)
	case model.QuestionTypeFillBlank:
		if len(req.Options) > 0 {
			return nil, fmt.Errorf("%w: fill_blank takes no options", ErrInvalidQuestion)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuestionType, req.Type)
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *adminService) QuestionBank(topicTag string) ([]dto.QuestionBankItemDTO, error) {
	questions, err := s.questionRepo.FindBank(topicTag)
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	items := make([]dto.QuestionBankItemDTO, 0, len(questions))
	for i := range questions {
		items = append(items, dto.QuestionBankItemDTO{
			QuestionID:    questions[i].QuestionID,
			Text:          questions[i].Text,
			Type:          questions[i].Type,
			TopicTag:      questions[i].TopicTag,
			Options:       questions[i].OptionList(),
			CorrectAnswer: questions[i].CorrectAnswer,
			Explanation:   questions[i].Explanation,
		})
	}
	return items, nil
}

func (s *adminService) AddParticipant(req dto.ParticipantCreateDTO) (*model.Participant, error) {
	participant := &model.Participant{
		ClassName: req.ClassName,
		Roll:      req.Roll,
		Name:      req.Name,
		PIN:       req.PIN,
		Level:     1,
	}
	if err := s.participantRepo.Create(participant); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("participant %s/%s already exists: %w", req.ClassName, req.Roll, err)
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return participant, nil
}

func (s *adminService) CreateClub(req dto.ClubCreateDTO) (*model.Club, error) {
	club := &model.Club{
		ClubID:   req.ClubID,
		ClubName: req.ClubName,
		LogoURL:  req.LogoURL,
	}
	if err := s.clubRepo.Create(club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

func (s *adminService) PostAnnouncement(req dto.AnnouncementCreateDTO) (*model.Announcement, error) {
	target := req.TargetClass
	if target == "" {
		target = model.AssignedClassesAll
	}
	announcement := &model.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		TargetClass: target,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return announcement, nil
}

func (s *adminService) DashboardStats() (*dto.DashboardStatsDTO, error) {
	students, err := s.participantRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	quizzes, err := s.quizRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}
	results, err := s.resultRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}
	bank, err := s.questionRepo.CountBank()
	if err != nil {
		return nil, fmt.Errorf("failed to count bank questions: %w", err)
	}
	recent, err := s.resultRepo.FindRecentWithNames(10)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent results: %w", err)
	}

	activity := make([]dto.RecentResultDTO, 0, len(recent))
	for _, row := range recent {
		activity = append(activity, dto.RecentResultDTO{
			StudentName: row.StudentName,
			QuizID:      row.QuizID,
			Score:       row.Score,
			SubmittedAt: row.CreatedAt,
		})
	}

	return &dto.DashboardStatsDTO{
		Students:        students,
		Quizzes:         quizzes,
		Results:         results,
		QuestionsInBank: bank,
		RecentActivity:  activity,
	}, nil
}
