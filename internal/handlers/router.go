package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/services"
	"github.com/hirelens/interview-service/internal/utils"
	"github.com/hirelens/interview-service/internal/validator"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	adminHandler     *AdminHandler
	candidateHandler *CandidateHandler
	authMiddleware   *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler: NewAuthHandler(serviceManager.Auth(), logger),
		adminHandler: NewAdminHandler(
			serviceManager.QuestionSet(),
			serviceManager.Ingest(),
			serviceManager.Grading(),
			serviceManager.Session(),
			serviceManager.Report(),
			validator,
			logger,
		),
		candidateHandler: NewCandidateHandler(
			serviceManager.QuestionSet(),
			serviceManager.Session(),
			serviceManager.Report(),
			logger,
		),
		authMiddleware: NewJWTAuthMiddleware(serviceManager.Auth()),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Public auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.POST("/question-sets", hm.adminHandler.CreateQuestionSet)
			admin.GET("/question-sets", hm.adminHandler.ListQuestionSets)
			admin.GET("/question-sets/:id", hm.adminHandler.GetQuestionSet)
			admin.PUT("/question-sets/:id/active", hm.adminHandler.SetQuestionSetActive)
			admin.DELETE("/question-sets/:id", hm.adminHandler.DeleteQuestionSet)

			admin.POST("/question-sets/:id/questions", hm.adminHandler.UploadQuestions)
			admin.POST("/question-sets/:id/answer-key", hm.adminHandler.UploadAnswerKey)

			admin.GET("/question-sets/:id/results", hm.adminHandler.ListResults)
			admin.GET("/question-sets/:id/results/export", hm.adminHandler.ExportResults)

			admin.GET("/sessions", hm.adminHandler.ListSessions)
			admin.POST("/sessions/:id/grade", hm.adminHandler.GradeSession)
			admin.GET("/sessions/:id/report", hm.adminHandler.GetSessionReport)
		}

		// Candidate routes
		candidate := v1.Group("")
		candidate.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleCandidate, models.RoleAdmin))
		{
			candidate.GET("/question-sets", hm.candidateHandler.ListQuestionSets)
			candidate.POST("/question-sets/:id/sessions", hm.candidateHandler.StartSession)
			candidate.GET("/sessions/:id/questions", hm.candidateHandler.GetSessionQuestions)
			candidate.POST("/sessions/:id/submit", hm.candidateHandler.SubmitSession)
			candidate.GET("/sessions/:id/report", hm.candidateHandler.GetSessionReport)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "interview-service",
		})
	})
}
