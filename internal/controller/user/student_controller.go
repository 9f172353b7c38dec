package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/service"
	"github.com/rs/zerolog/log"
)

type StudentController struct {
	studentService     service.StudentService
	submissionService  service.SubmissionService
	leaderboardService service.LeaderboardService
}

func NewStudentController(
	ss service.StudentService,
	sub service.SubmissionService,
	lb service.LeaderboardService,
) *StudentController {
	return &StudentController{
		studentService:     ss,
		submissionService:  sub,
		leaderboardService: lb,
	}
}

// GetDashboard godoc
// @Summary (Student) Dashboard with active quizzes, history and badges
// @Description Returns the quizzes currently open to the student's class (level locks applied), their past results, and unlocked badges.
// @Tags Student
// @Produce json
// @Param class query string true "Class name"
// @Param roll query string true "Roll number"
// @Success 200 {object} dto.DashboardDTO
// @Failure 400 {object} dto.ErrorResponse "Missing class or roll"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *StudentController) GetDashboard(ctx *gin.Context) {
	var key dto.ParticipantKeyDTO
	if err := ctx.ShouldBindQuery(&key); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "class and roll query params are required", Details: []string{err.Error()}})
		return
	}

	dashboard, err := c.studentService.Dashboard(key)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Participant not found"})
			return
		}
		log.Error().Err(err).Str("class", key.ClassName).Str("roll", key.Roll).Msg("GetDashboard: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load dashboard", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// GetQuizDetails godoc
// @Summary (Student) Playable view of a quiz
// @Description Returns quiz questions without correct answers or explanations.
// @Tags Student
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id} [get]
func (c *StudentController) GetQuizDetails(ctx *gin.Context) {
	quizID := ctx.Param("quiz_id")
	quiz, err := c.studentService.QuizDetails(quizID)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
			return
		}
		log.Error().Err(err).Str("quizID", quizID).Msg("GetQuizDetails: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load quiz", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// SubmitQuiz godoc
// @Summary (Student) Submit answers for a quiz
// @Description Grades the attempt, stores an immutable result, and applies XP, level and achievement changes atomically.
// @Tags Student
// @Accept json
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Param submission body dto.QuizSubmissionDTO true "Answers keyed by question_id"
// @Success 201 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid submission body or empty quiz"
// @Failure 404 {object} dto.ErrorResponse "Quiz or participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/submissions [post]
func (c *StudentController) SubmitQuiz(ctx *gin.Context) {
	quizID := ctx.Param("quiz_id")

	var req dto.QuizSubmissionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("quizID", quizID).Msg("SubmitQuiz: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitQuiz(quizID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz not found"})
		case errors.Is(err, service.ErrParticipantNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Participant not found"})
		case errors.Is(err, service.ErrQuizHasNoQuestions):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Quiz has no questions"})
		default:
			log.Error().Err(err).Str("quizID", quizID).Msg("SubmitQuiz: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit quiz", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// GetReview godoc
// @Summary (Student) Per-question review of a past result
// @Description Shows each question with the submitted and correct answers. The first review of a result grants bonus XP.
// @Tags Student
// @Produce json
// @Param result_id path string true "Result ID"
// @Success 200 {array} dto.AnswerReviewDTO
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /results/{result_id}/review [get]
func (c *StudentController) GetReview(ctx *gin.Context) {
	resultID := ctx.Param("result_id")
	review, err := c.studentService.Review(resultID)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Result not found"})
			return
		}
		log.Error().Err(err).Str("resultID", resultID).Msg("GetReview: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load review", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, review)
}

// GetLeaderboard godoc
// @Summary (Student) Top participants by XP
// @Description Returns the highest-XP participants with dense ranks: ties share a rank and the next distinct XP takes the next rank.
// @Tags Student
// @Produce json
// @Param limit query int false "Number of rows (default 10)"
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *StudentController) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit"})
			return
		}
		limit = val
	}

	entries, err := c.leaderboardService.TopN(limit)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load leaderboard", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetGamificationProfile godoc
// @Summary (Student) XP, level and achievement catalog
// @Description Returns the participant's XP, level boundaries, and every achievement with its unlock state.
// @Tags Student
// @Produce json
// @Param class query string true "Class name"
// @Param roll query string true "Roll number"
// @Success 200 {object} dto.GamificationProfileDTO
// @Failure 400 {object} dto.ErrorResponse "Missing class or roll"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/gamification [get]
func (c *StudentController) GetGamificationProfile(ctx *gin.Context) {
	var key dto.ParticipantKeyDTO
	if err := ctx.ShouldBindQuery(&key); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "class and roll query params are required", Details: []string{err.Error()}})
		return
	}

	profile, err := c.studentService.GamificationProfile(key)
	if err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Participant not found"})
			return
		}
		log.Error().Err(err).Str("class", key.ClassName).Str("roll", key.Roll).Msg("GetGamificationProfile: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load profile", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// GetAnnouncements godoc
// @Summary (Student) Latest announcements for a class
// @Description Returns the most recent announcements targeted at the given class or at All.
// @Tags Student
// @Produce json
// @Param class query string true "Class name"
// @Success 200 {array} dto.AnnouncementDTO
// @Failure 400 {object} dto.ErrorResponse "Missing class"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /announcements [get]
func (c *StudentController) GetAnnouncements(ctx *gin.Context) {
	className := ctx.Query("class")
	if className == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "class query param is required"})
		return
	}

	announcements, err := c.studentService.Announcements(className)
	if err != nil {
		log.Error().Err(err).Str("class", className).Msg("GetAnnouncements: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load announcements", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, announcements)
}
