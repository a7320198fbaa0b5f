package main

import (
	"github.com/gin-gonic/gin"
	"github.com/tasktrack/tasktrack-api/internal/auth"
	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/database"
	"github.com/tasktrack/tasktrack-api/internal/handlers"
	"github.com/tasktrack/tasktrack-api/internal/logging"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/repository"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogLevel, cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to add indexes")
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(userRepo, cfg.BcryptCost)
	taskService := services.NewTaskService(taskRepo)
	subtaskService := services.NewSubtaskService(taskRepo)
	dashboardService := services.NewDashboardService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger())

	// API routes
	api := r.Group("/api")
	{
		// Liveness probe
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "TaskTrack API is running",
			})
		})

		// Auth routes (public except /me)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", middleware.RequireTaskOwnership(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskOwnership(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskOwnership(), taskHandler.DeleteTask)

			// Subtask routes, nested under their parent task
			tasks.POST("/:id/subtasks", middleware.RequireTaskOwnership(), subtaskHandler.AddSubtask)
			tasks.GET("/:id/subtasks", middleware.RequireTaskOwnership(), subtaskHandler.ListSubtasks)
			tasks.PATCH("/:id/subtasks/:subtaskId", middleware.RequireTaskOwnership(), subtaskHandler.ToggleSubtask)
			tasks.PUT("/:id/subtasks/:subtaskId", middleware.RequireTaskOwnership(), subtaskHandler.UpdateSubtask)
			tasks.DELETE("/:id/subtasks/:subtaskId", middleware.RequireTaskOwnership(), subtaskHandler.DeleteSubtask)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth(tokens))
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/recent-tasks", dashboardHandler.GetRecentTasks)
			dashboard.GET("/overdue-tasks", dashboardHandler.GetOverdueTasks)
			dashboard.GET("/priority-stats", dashboardHandler.GetPriorityStats)
		}
	}

	// Start server
	logging.L().Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.L().Fatal().Err(err).Msg("failed to start server")
	}
}
