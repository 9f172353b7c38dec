package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminController struct {
	adminService     service.AdminService
	generatorService service.QuestionGeneratorService
}

func NewAdminController(as service.AdminService, gs service.QuestionGeneratorService) *AdminController {
	return &AdminController{adminService: as, generatorService: gs}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz from bank questions
// @Description Creates a quiz and attaches the listed bank questions to it. A quiz with a scheduled_at starts pending; otherwise it goes live immediately.
// @Tags Admin
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateDTO true "Quiz definition"
// @Success 201 {object} model.Quiz
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or questions not in bank"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes [post]
func (c *AdminController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.adminService.CreateQuiz(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClubNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Club not found"})
		case errors.Is(err, service.ErrQuestionNotInBank):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Msg("CreateQuiz: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create quiz", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusCreated, quiz)
}

// UpdateQuizStatus godoc
// @Summary (Admin) Change a quiz's lifecycle status
// @Tags Admin
// @Accept json
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Param status body dto.QuizStatusUpdateDTO true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes/{quiz_id}/status [put]
func (c *AdminController) UpdateQuizStatus(ctx *gin.Context) {
	quizID := ctx.Param("quiz_id")

	var req dto.QuizStatusUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.adminService.SetQuizStatus(quizID, req.Status); err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Str("quizID", quizID).Msg("UpdateQuizStatus: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update status", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "status": req.Status})
}

// AddQuestionToBank godoc
// @Summary (Admin) Add a question to the bank
// @Description Adds an unattached question to the bank. mcq questions need at least two options containing the correct answer; fill_blank questions take none.
// @Tags Admin
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question definition"
// @Success 201 {object} model.Question
// @Failure 400 {object} dto.ErrorResponse "Invalid question"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/question-bank [post]
func (c *AdminController) AddQuestionToBank(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.adminService.AddQuestionToBank(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) || errors.Is(err, service.ErrUnknownQuestionType) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("AddQuestionToBank: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// GetQuestionBank godoc
// @Summary (Admin) List bank questions
// @Tags Admin
// @Produce json
// @Param topic query string false "Filter by topic tag (substring, case-insensitive)"
// @Success 200 {array} dto.QuestionBankItemDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/question-bank [get]
func (c *AdminController) GetQuestionBank(ctx *gin.Context) {
	items, err := c.adminService.QuestionBank(ctx.Query("topic"))
	if err != nil {
		log.Error().Err(err).Msg("GetQuestionBank: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load question bank", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// CreateParticipant godoc
// @Summary (Admin) Register a participant
// @Tags Admin
// @Accept json
// @Produce json
// @Param participant body dto.ParticipantCreateDTO true "Participant"
// @Success 201 {object} model.Participant
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 409 {object} dto.ErrorResponse "Class/roll pair already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/participants [post]
func (c *AdminController) CreateParticipant(ctx *gin.Context) {
	var req dto.ParticipantCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	participant, err := c.adminService.AddParticipant(req)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Participant already exists for this class and roll"})
			return
		}
		log.Error().Err(err).Msg("CreateParticipant: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create participant", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, participant)
}

// CreateClub godoc
// @Summary (Admin) Register a club
// @Tags Admin
// @Accept json
// @Produce json
// @Param club body dto.ClubCreateDTO true "Club"
// @Success 201 {object} model.Club
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/clubs [post]
func (c *AdminController) CreateClub(ctx *gin.Context) {
	var req dto.ClubCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	club, err := c.adminService.CreateClub(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateClub: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create club", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, club)
}

// CreateAnnouncement godoc
// @Summary (Admin) Publish an announcement
// @Tags Admin
// @Accept json
// @Produce json
// @Param announcement body dto.AnnouncementCreateDTO true "Announcement"
// @Success 201 {object} model.Announcement
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/announcements [post]
func (c *AdminController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.AnnouncementCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	announcement, err := c.adminService.PostAnnouncement(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateAnnouncement: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create announcement", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, announcement)
}

// GetDashboardStats godoc
// @Summary (Admin) Portal overview counters and recent activity
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.DashboardStatsDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.adminService.DashboardStats()
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardStats: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load dashboard stats", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// DraftQuestions godoc
// @Summary (Admin) Draft mcq questions with AI
// @Description Generates draft questions on a topic for admin review. Drafts are not stored.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.QuestionDraftRequestDTO true "Topic and count"
// @Success 200 {array} dto.QuestionDraftDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 503 {object} dto.ErrorResponse "Generator not configured"
// @Failure 500 {object} dto.ErrorResponse "Generation failed"
// @Router /admin/question-bank/draft [post]
func (c *AdminController) DraftQuestions(ctx *gin.Context) {
	var req dto.QuestionDraftRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	drafts, err := c.generatorService.DraftQuestions(ctx.Request.Context(), req.Topic, req.Count)
	if err != nil {
		if errors.Is(err, service.ErrGeneratorUnavailable) {
			ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: "Question generator is not configured"})
			return
		}
		log.Error().Err(err).Str("topic", req.Topic).Msg("DraftQuestions: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, drafts)
}
