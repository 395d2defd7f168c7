package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/examprep-service/internal/services"
	"github.com/SAP-F-2025/examprep-service/internal/utils"
)

// RouterConfig holds the HTTP settings that are not service concerns
type RouterConfig struct {
	StaticDir      string
	MaxUploadBytes int64

	// Health reports whether the storage layer is reachable. Nil means always healthy.
	Health func(ctx context.Context) error
}

type HandlerManager struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	taskHandler    *TaskHandler
	statsHandler   *StatsHandler
	examHandler    *ExamHandler
	authMiddleware *AuthMiddleware
	config         RouterConfig
	logger         utils.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, config RouterConfig) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:    NewUserHandler(serviceManager.User(), logger),
		taskHandler:    NewTaskHandler(serviceManager.Task(), logger),
		statsHandler:   NewStatsHandler(serviceManager.Result(), logger),
		examHandler:    NewExamHandler(serviceManager.Exam(), config.MaxUploadBytes, logger),
		authMiddleware: NewAuthMiddleware(serviceManager.Auth(), logger),
		config:         config,
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Exam prep API is running"})
	})
	router.GET("/health", func(c *gin.Context) {
		if hm.config.Health != nil {
			if err := hm.config.Health(c.Request.Context()); err != nil {
				hm.logger.Error("Health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"service": "examprep-service",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "examprep-service",
		})
	})

	router.POST("/login", hm.authHandler.Login)
	router.GET("/users/", hm.userHandler.ListUsers)

	// Task routes
	tasks := router.Group("")
	tasks.Use(hm.authMiddleware.RequireAuth())
	{
		tasks.POST("/create-task", hm.taskHandler.CreateTask)
		tasks.GET("/get-task", hm.taskHandler.GetTasks)
		tasks.POST("/update-task/:task_id", hm.taskHandler.UpdateTask)
	}

	stats := router.Group("/api/stats")
	{
		stats.POST("/save-result", hm.statsHandler.SaveResult)
		stats.GET("/progress/:user_id", hm.statsHandler.GetProgress)
		stats.GET("/dashboard-stats/:user_id", hm.statsHandler.GetDashboardStats)
	}

	exam := router.Group("/exam")
	{
		exam.POST("/generate", hm.examHandler.Generate)
		exam.POST("/generate-from-pdf", hm.examHandler.GenerateFromPDF)
		exam.POST("/api/extract-pyq", hm.examHandler.ExtractPYQ)
		exam.POST("/generate-from-web", hm.examHandler.GenerateFromWeb)
	}

	if hm.config.StaticDir != "" {
		router.Static("/static", hm.config.StaticDir)
	}
}
