package main

import (
	"log"

	"github.com/crewtide/api/internal/config"
	"github.com/crewtide/api/internal/constants"
	"github.com/crewtide/api/internal/database"
	"github.com/crewtide/api/internal/handlers"
	"github.com/crewtide/api/internal/middleware"
	"github.com/crewtide/api/internal/repository"
	"github.com/crewtide/api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database and run migrations
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	resourceService := services.NewResourceService(resourceRepo, projectRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	resourceHandler := handlers.NewResourceHandler(resourceService)

	// Initialize Gin router
	r := gin.Default()

	// The SPA frontend runs on its own origin and sends the session cookie
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendOrigin}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "CrewTide API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.POST("/join", projectHandler.JoinProject)
			projects.GET("/:id", middleware.RequireProjectAccess(projectRepo), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.DeleteProject)
			projects.POST("/:id/members", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.RemoveMember)
			projects.POST("/:id/session", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.StartSession)
			projects.DELETE("/:id/session", middleware.RequireProjectAccess(projectRepo), middleware.RequireProjectOwner(), projectHandler.EndSession)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/claim", taskHandler.ClaimTask)
		}

		// Resource hub routes (protected)
		resources := api.Group("/resources")
		resources.Use(middleware.RequireAuth())
		{
			resources.GET("", resourceHandler.ListResources)
			resources.POST("", resourceHandler.CreateResource)
			resources.DELETE("/:id", resourceHandler.DeleteResource)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
