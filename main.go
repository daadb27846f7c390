package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodySize = 2 << 20 // 2 MiB

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

// initRedis wires the token blacklist and dashboard cache. Both are optional:
// without Redis the blacklist rejects nothing extra and every dashboard read
// aggregates fresh.
func initRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, token blacklist and dashboard cache disabled")
		return
	}

	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Printf("Warning: token blacklist disabled: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	cacheTTL := utils.GetEnvAsDuration("DASHBOARD_CACHE_TTL", time.Minute)
	cache, err := services.NewDashboardCache(redisURL, cacheTTL)
	if err != nil {
		log.Printf("Warning: dashboard cache disabled: %v", err)
	} else {
		services.GlobalDashboardCache = cache
	}
}

func setupRouter(aiService *services.AIService) *gin.Engine {
	router := gin.Default()

	// Repositories
	userRepo := repository.GetUserRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	notesRepo := repository.GetNotesRepo(utils.MongoClient)
	subjectsRepo := repository.GetSubjectsRepo(utils.MongoClient)
	tagsRepo := repository.GetTagsRepo(utils.MongoClient)
	quizzesRepo := repository.GetQuizzesRepo(utils.MongoClient)
	attemptsRepo := repository.GetQuizAttemptsRepo(utils.MongoClient)
	setsRepo := repository.GetFlashcardSetsRepo(utils.MongoClient)
	studySessionsRepo := repository.GetStudySessionsRepo(utils.MongoClient)
	activityRepo := repository.GetDailyActivityRepo(utils.MongoClient)
	streakRepo := repository.GetStudyStreakRepo(utils.MongoClient)
	performanceRepo := repository.GetSubjectPerformanceRepo(utils.MongoClient)
	progressRepo := repository.GetFlashcardProgressRepo(utils.MongoClient)
	goalRepo := repository.GetWeeklyGoalRepo(utils.MongoClient)
	achievementRepo := repository.GetAchievementRepo(utils.MongoClient)
	totalsRepo := repository.GetTotalsRepo(utils.MongoClient)

	// Services
	clock := utils.RealClock{}
	userService := &usecase.UserService{Users: userRepo}
	trackerService := &usecase.TrackerService{
		Activities:  activityRepo,
		Streaks:     streakRepo,
		Performance: performanceRepo,
		Clock:       clock,
	}
	schedulerService := &usecase.SchedulerService{
		Progress: progressRepo,
		Clock:    clock,
	}
	dashboardService := &usecase.DashboardService{
		Streaks:      streakRepo,
		Activities:   activityRepo,
		Performance:  performanceRepo,
		Goals:        goalRepo,
		Achievements: achievementRepo,
		Totals:       totalsRepo,
		Clock:        clock,
	}
	notesService := &usecase.NotesService{
		Notes:    notesRepo,
		Subjects: subjectsRepo,
		Tracker:  trackerService,
	}
	quizzesService := &usecase.QuizzesService{
		Quizzes:  quizzesRepo,
		Attempts: attemptsRepo,
		Tracker:  trackerService,
	}
	flashcardsService := &usecase.FlashcardsService{
		Sets:      setsRepo,
		Sessions:  studySessionsRepo,
		Progress:  progressRepo,
		Scheduler: schedulerService,
		Tracker:   trackerService,
		Clock:     clock,
	}

	// Global middleware
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBodySize))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"mongo_pool": utils.GetMongoPoolStats(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userRepo)
			})
			user.PUT("/email", func(c *gin.Context) {
				handler.ChangeEmailHandler(c, userRepo)
			})
			user.PUT("/password", func(c *gin.Context) {
				handler.ChangePasswordHandler(c, userService, sessionRepo)
			})
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.DELETE("", func(c *gin.Context) {
				handler.DeleteUserHandler(c, userRepo, sessionRepo)
			})

			twofa := user.Group("/2fa")
			{
				twofa.POST("/generate", func(c *gin.Context) {
					handler.Generate2FASecretHandler(c, userRepo)
				})
				twofa.POST("/enable", func(c *gin.Context) {
					handler.Enable2FAHandler(c, userRepo)
				})
				twofa.POST("/verify", func(c *gin.Context) {
					handler.Verify2FAHandler(c, userRepo)
				})
				twofa.POST("/disable", func(c *gin.Context) {
					handler.Disable2FAHandler(c, userRepo)
				})
				twofa.POST("/recovery", func(c *gin.Context) {
					handler.UseRecoveryCodeHandler(c, userRepo)
				})
			}
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessionsHandler(c, sessionRepo)
			})
			sessions.DELETE("/:id", func(c *gin.Context) {
				handler.EndSessionHandler(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessionsHandler(c, sessionRepo)
			})
		}

		notes := protected.Group("/notes")
		{
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.GET("", func(c *gin.Context) {
				handler.GetNotesHandler(c, notesService)
			})
			notes.GET("/search", func(c *gin.Context) {
				handler.SearchNotesHandler(c, notesService)
			})
			notes.GET("/favorites", func(c *gin.Context) {
				handler.GetFavoriteNotesHandler(c, notesService)
			})
			notes.GET("/subject/:subjectId", func(c *gin.Context) {
				handler.GetNotesBySubjectHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.POST("/:id/favorite", func(c *gin.Context) {
				handler.ToggleFavoriteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
			notes.POST("/generate", func(c *gin.Context) {
				handler.GenerateNoteHandler(c, notesService, aiService)
			})
		}

		subjects := protected.Group("/subjects")
		{
			subjects.POST("", func(c *gin.Context) {
				handler.CreateSubjectHandler(c, subjectsRepo)
			})
			subjects.GET("", func(c *gin.Context) {
				handler.ListSubjectsHandler(c, subjectsRepo)
			})
			subjects.GET("/:id", func(c *gin.Context) {
				handler.GetSubjectHandler(c, subjectsRepo)
			})
			subjects.PUT("/:id", func(c *gin.Context) {
				handler.UpdateSubjectHandler(c, subjectsRepo)
			})
			subjects.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteSubjectHandler(c, subjectsRepo)
			})
		}

		tags := protected.Group("/tags")
		{
			tags.POST("", func(c *gin.Context) {
				handler.CreateTagHandler(c, tagsRepo)
			})
			tags.GET("", func(c *gin.Context) {
				handler.ListTagsHandler(c, tagsRepo)
			})
		}

		quizzes := protected.Group("/quizzes")
		{
			quizzes.POST("", func(c *gin.Context) {
				handler.CreateQuizHandler(c, quizzesService)
			})
			quizzes.GET("", func(c *gin.Context) {
				handler.GetQuizzesHandler(c, quizzesService)
			})
			quizzes.GET("/attempts", func(c *gin.Context) {
				handler.GetQuizAttemptsHandler(c, quizzesService)
			})
			quizzes.GET("/stats", func(c *gin.Context) {
				handler.GetQuizStatsHandler(c, quizzesService)
			})
			quizzes.GET("/:id", func(c *gin.Context) {
				handler.GetQuizHandler(c, quizzesService)
			})
			quizzes.POST("/:id/submit", func(c *gin.Context) {
				handler.SubmitQuizHandler(c, quizzesService)
			})
			quizzes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteQuizHandler(c, quizzesService)
			})
			quizzes.POST("/generate", func(c *gin.Context) {
				handler.GenerateQuizHandler(c, quizzesService, notesService, aiService)
			})
		}

		flashcards := protected.Group("/flashcards")
		{
			flashcards.POST("/sets", func(c *gin.Context) {
				handler.CreateFlashcardSetHandler(c, flashcardsService)
			})
			flashcards.GET("/sets", func(c *gin.Context) {
				handler.GetFlashcardSetsHandler(c, flashcardsService)
			})
			flashcards.GET("/sets/:id", func(c *gin.Context) {
				handler.GetFlashcardSetHandler(c, flashcardsService)
			})
			flashcards.PUT("/sets/:id", func(c *gin.Context) {
				handler.UpdateFlashcardSetHandler(c, flashcardsService)
			})
			flashcards.DELETE("/sets/:id", func(c *gin.Context) {
				handler.DeleteFlashcardSetHandler(c, flashcardsService)
			})
			flashcards.POST("/sets/:id/cards", func(c *gin.Context) {
				handler.AddCardHandler(c, flashcardsService)
			})
			flashcards.DELETE("/sets/:id/cards/:cardId", func(c *gin.Context) {
				handler.RemoveCardHandler(c, flashcardsService)
			})
			flashcards.POST("/cards/:cardId/review", func(c *gin.Context) {
				handler.ReviewCardHandler(c, flashcardsService)
			})
			flashcards.GET("/due", func(c *gin.Context) {
				handler.GetDueCardsHandler(c, flashcardsService)
			})
			flashcards.GET("/stats", func(c *gin.Context) {
				handler.GetFlashcardStatsHandler(c, flashcardsService)
			})
			flashcards.POST("/sessions", func(c *gin.Context) {
				handler.StartStudySessionHandler(c, flashcardsService)
			})
			flashcards.PUT("/sessions/:id/end", func(c *gin.Context) {
				handler.EndStudySessionHandler(c, flashcardsService)
			})
			flashcards.GET("/sessions", func(c *gin.Context) {
				handler.GetStudySessionsHandler(c, flashcardsService)
			})
			flashcards.POST("/generate", func(c *gin.Context) {
				handler.GenerateFlashcardsHandler(c, flashcardsService, notesService, aiService)
			})
		}

		analytics := protected.Group("/analytics")
		{
			analytics.POST("/events", func(c *gin.Context) {
				handler.RecordEventHandler(c, trackerService)
			})
			analytics.GET("/dashboard", func(c *gin.Context) {
				handler.GetDashboardHandler(c, dashboardService)
			})
			analytics.GET("/streak", func(c *gin.Context) {
				handler.GetStreakHandler(c, streakRepo)
			})
			analytics.GET("/performance", func(c *gin.Context) {
				handler.GetSubjectPerformanceHandler(c, performanceRepo)
			})
			analytics.GET("/achievements", func(c *gin.Context) {
				handler.ListAchievementsHandler(c, achievementRepo)
			})

			goals := analytics.Group("/goals")
			{
				goals.POST("", func(c *gin.Context) {
					handler.CreateGoalHandler(c, goalRepo)
				})
				goals.GET("", func(c *gin.Context) {
					handler.ListGoalsHandler(c, goalRepo)
				})
				goals.PUT("/:id", func(c *gin.Context) {
					handler.UpdateGoalHandler(c, goalRepo)
				})
				goals.DELETE("/:id", func(c *gin.Context) {
					handler.DeleteGoalHandler(c, goalRepo)
				})
			}
		}
	}

	return router
}

func main() {
	initRedis()

	if err := repository.SetupIndexes(utils.MongoClient.Database(os.Getenv("MONGO_DB"))); err != nil {
		log.Printf("Warning: failed to create indexes: %v", err)
	}

	utils.StartSystemMetrics(utils.GetEnvAsDuration("SYSTEM_METRICS_INTERVAL", 15*time.Second))

	var aiService *services.AIService
	if svc, err := services.NewAIService(services.DefaultAIConfig()); err != nil {
		log.Printf("AI generation disabled: %v", err)
	} else {
		aiService = svc
	}

	router := setupRouter(aiService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
