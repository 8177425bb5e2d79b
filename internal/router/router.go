package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/handler"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Question      *handler.QuestionHandler
	Exam          *handler.ExamHandler
	WrongQuestion *handler.WrongQuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Authenticated Group (any active principal) ─────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		// Study mode
		api.GET("/questions", handlers.Question.ListQuestions)

		// Exams
		api.GET("/exam/generate", handlers.Exam.GenerateExam)
		api.POST("/exam/submit", handlers.Exam.SubmitExam)
		api.GET("/exam/results", handlers.Exam.ListResults)

		// Mistake book
		api.POST("/wrong-questions", handlers.WrongQuestion.RecordWrongQuestion)
		api.GET("/wrong-questions", handlers.WrongQuestion.ListWrongQuestions)
		api.DELETE("/wrong-questions/:question_id", handlers.WrongQuestion.RemoveWrongQuestion)
	}

	// ─── 3. Admin Group (JWT + admin role) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	{
		// User management
		adminAPI.GET("/users", handlers.User.ListUsers)
		adminAPI.POST("/users", handlers.User.CreateUser)
		adminAPI.PATCH("/users/:id/status", handlers.User.UpdateUserStatus)
		adminAPI.DELETE("/users/:id", handlers.User.DeleteUser)

		// Question bank management
		adminAPI.POST("/questions/import", handlers.Question.ImportQuestions)
		adminAPI.DELETE("/questions", handlers.Question.DeleteQuestions)
	}

	return router
}
