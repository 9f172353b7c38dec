package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quokka/config"
	"github.com/lshigami/Quokka/database"
	_ "github.com/lshigami/Quokka/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Quokka/internal/controller/admin"
	userctrl "github.com/lshigami/Quokka/internal/controller/user"
	"github.com/lshigami/Quokka/internal/logger"
	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
	"github.com/lshigami/Quokka/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quiz Portal Gamification API
// @version 1.0
// @description Quiz hosting backend with answer grading, XP levels, achievements and a leaderboard.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewParticipantRepository,
			repository.NewClubRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewResultRepository,
			repository.NewGamificationRepository,
			repository.NewAnnouncementRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAnswerGrader,
			service.NewGamificationService,
			service.NewSubmissionService,
			service.NewStudentService,
			service.NewLeaderboardService,
			service.NewAdminService,
			service.NewQuestionGeneratorService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewStudentController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAchievements),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	studentCtrl *userctrl.StudentController,
	adminCtrl *adminctrl.AdminController,
	adminService service.AdminService,
) {
	// Student routes (prefixed with /api/v1)
	studentAPIGroup := router.Group("/api/v1")
	{
		studentAPIGroup.GET("/dashboard", studentCtrl.GetDashboard)
		studentAPIGroup.GET("/quizzes/:quiz_id", studentCtrl.GetQuizDetails)
		studentAPIGroup.POST("/quizzes/:quiz_id/submissions", studentCtrl.SubmitQuiz)
		studentAPIGroup.GET("/results/:result_id/review", studentCtrl.GetReview)
		studentAPIGroup.GET("/leaderboard", studentCtrl.GetLeaderboard)
		studentAPIGroup.GET("/profile/gamification", studentCtrl.GetGamificationProfile)
		studentAPIGroup.GET("/announcements", studentCtrl.GetAnnouncements)
	}

	// Admin routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/quizzes", adminCtrl.CreateQuiz)
		adminAPIGroup.PUT("/quizzes/:quiz_id/status", adminCtrl.UpdateQuizStatus)
		adminAPIGroup.POST("/question-bank", adminCtrl.AddQuestionToBank)
		adminAPIGroup.GET("/question-bank", adminCtrl.GetQuestionBank)
		adminAPIGroup.POST("/question-bank/draft", adminCtrl.DraftQuestions)
		adminAPIGroup.POST("/participants", adminCtrl.CreateParticipant)
		adminAPIGroup.POST("/clubs", adminCtrl.CreateClub)
		adminAPIGroup.POST("/announcements", adminCtrl.CreateAnnouncement)
		adminAPIGroup.GET("/dashboard", adminCtrl.GetDashboardStats)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Scheduled quizzes go live without an admin touching them.
	activatorCtx, cancelActivator := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz portal server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			go runQuizActivator(activatorCtx, adminService)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			cancelActivator()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// runQuizActivator periodically promotes scheduled pending quizzes.
func runQuizActivator(ctx context.Context, adminService service.AdminService) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := adminService.ActivateDueQuizzes(); err != nil {
				log.Error().Err(err).Msg("Scheduled quiz activation failed")
			}
		}
	}
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Club{},
		&model.Participant{},
		&model.Quiz{},
		&model.Question{},
		&model.Result{},
		&model.XPLog{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Announcement{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedAchievements makes sure the achievement catalog exists before any
// submission can award from it.
func SeedAchievements(db *gorm.DB) error {
	return database.SeedAchievements(db)
}
