package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	// swaggerFiles "github.com/swaggo/files"
	// ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/auth"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	TokenManager   auth.TokenManager
	Metrics        *metrics.Metrics
	BasePath       string
	AllowedOrigins []string
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "kanban-board-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "kanban-board-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "kanban-board-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "kanban-board-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "kanban-board-api"})
	})

	// Swagger documentation (disabled for faster builds)
	// r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)

	// Initialize services
	userService := service.NewUserService(userRepo, cfg.TokenManager, cfg.Metrics, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, userRepo, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, boardRepo, userRepo, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, taskRepo, boardRepo, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService)
	boardHandler := handler.NewBoardHandler(boardService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)

	// API routes group
	api := r.Group(cfg.BasePath)

	authMiddleware := middleware.Auth(cfg.TokenManager)

	// ============================================================
	// Auth routes (public except logout)
	// ============================================================
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/registration", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}
	api.GET("/email-check", authHandler.CheckEmail)

	// ============================================================
	// Board routes
	// ============================================================
	boards := api.Group("/boards")
	boards.Use(authMiddleware)
	{
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("", boardHandler.ListBoards)
		boards.GET("/:boardId", boardHandler.GetBoard)
		boards.PATCH("/:boardId", boardHandler.UpdateBoard)
		boards.DELETE("/:boardId", boardHandler.DeleteBoard)
	}

	// ============================================================
	// Task routes (fixed paths before the :taskId wildcard)
	// ============================================================
	tasks := api.Group("/tasks")
	tasks.Use(authMiddleware)
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/assigned-to-me", taskHandler.ListAssignedToMe)
		tasks.GET("/reviewing", taskHandler.ListReviewing)
		tasks.GET("/:taskId", taskHandler.GetTask)
		tasks.PATCH("/:taskId", taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", taskHandler.DeleteTask)

		// Comments nested under tasks
		tasks.POST("/:taskId/comments", commentHandler.CreateComment)
		tasks.GET("/:taskId/comments", commentHandler.ListComments)
		tasks.GET("/:taskId/comments/:commentId", commentHandler.GetComment)
		tasks.DELETE("/:taskId/comments/:commentId", commentHandler.DeleteComment)
	}

	return r
}
