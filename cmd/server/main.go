package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/shubhamjanki/collabhub-backend/internal/cache"
	"github.com/shubhamjanki/collabhub-backend/internal/call"
	"github.com/shubhamjanki/collabhub-backend/internal/handlers"
	"github.com/shubhamjanki/collabhub-backend/internal/middleware"
	"github.com/shubhamjanki/collabhub-backend/internal/models"
	"github.com/shubhamjanki/collabhub-backend/internal/realtime"
	"github.com/shubhamjanki/collabhub-backend/internal/repository"
	"github.com/shubhamjanki/collabhub-backend/internal/service"
	"github.com/shubhamjanki/collabhub-backend/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "CollabHub Backend",
		// Support document uploads up to 20MB + overhead.
		BodyLimit: 24 * 1024 * 1024,
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	contributionCache := cache.NewContributionCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	inviteRepo := repository.NewProjectInviteRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	chatRepo := repository.NewChatMessageRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rubricRepo := repository.NewRubricRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	// Initialize S3/MinIO storage (best-effort; document endpoints return 503 if missing)
	var docStore *storage.S3Storage
	if cfg, err := storage.LoadS3ConfigFromEnv(); err != nil {
		log.Printf("WARNING: S3 storage not configured: %v", err)
	} else if st, err := storage.NewS3Storage(cfg); err != nil {
		log.Printf("WARNING: Failed to initialize S3 storage: %v", err)
	} else {
		docStore = st
		log.Printf("S3 storage initialized successfully (bucket=%s)", cfg.Bucket)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	courseService := service.NewCourseService(courseRepo, userRepo)
	projectService := service.NewProjectService(projectRepo, courseRepo, inviteRepo)
	contributionService := service.NewContributionService(contributionRepo, contributionCache)
	chatService := service.NewChatService(chatRepo, contributionService)
	documentService := service.NewDocumentService(documentRepo, docStore, contributionService)
	taskService := service.NewTaskService(taskRepo, contributionService)
	evaluationService := service.NewEvaluationService(evaluationRepo, rubricRepo, projectRepo, courseRepo)

	// Call registry and room token issuer
	callRegistry := call.NewRegistry()
	callSecret := os.Getenv("CALL_TOKEN_SECRET")
	if callSecret == "" {
		callSecret = jwtSecret
	}
	tokenIssuer, err := call.NewTokenIssuer(callSecret, time.Hour)
	if err != nil {
		log.Fatal("Failed to initialize call token issuer:", err)
	}

	// Initialize handlers
	hub := realtime.NewHub()
	wsHandler := handlers.NewWebSocketHandler(userService, hub)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	courseHandler := handlers.NewCourseHandler(courseService)
	projectHandler := handlers.NewProjectHandler(projectService)
	contributionHandler := handlers.NewContributionHandler(contributionService, projectService)
	chatHandler := handlers.NewChatHandler(chatService, projectService, hub)
	documentHandler := handlers.NewDocumentHandler(documentService, projectService)
	taskHandler := handlers.NewTaskHandler(taskService, projectService)
	evaluationHandler := handlers.NewEvaluationHandler(evaluationService, projectService)
	callHandler := handlers.NewCallHandler(callRegistry, tokenIssuer, projectService, userService, hub)

	// Public routes
	api := app.Group("/api", middleware.OriginAllowed())
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	api.Get("/users/check-username", userHandler.CheckUsername)
	api.Get("/join/:token", projectHandler.GetInvitePreview)
	api.Get("/share/:token", documentHandler.ResolveShareLink)

	// Protected routes
	protected := api.Group("/", middleware.AuthRequired())
	protected.Get("/users/me", userHandler.GetCurrentUser)
	protected.Put("/users/me", userHandler.UpdateProfile)
	protected.Get("/users/search", userHandler.SearchUsers)

	// Course routes
	protected.Post("/courses", middleware.RequireRole(models.UserRoleFaculty), courseHandler.CreateCourse)
	protected.Get("/courses", courseHandler.GetMyCourses)
	protected.Get("/courses/:id", courseHandler.GetCourse)
	protected.Delete("/courses/:id", middleware.RequireRole(models.UserRoleFaculty), courseHandler.ArchiveCourse)
	protected.Post("/courses/enroll", courseHandler.Enroll)
	protected.Get("/courses/:id/enrollments", courseHandler.GetEnrollments)
	protected.Get("/courses/:id/projects", projectHandler.GetCourseProjects)
	protected.Post("/courses/:id/rubrics", middleware.RequireRole(models.UserRoleFaculty), evaluationHandler.CreateRubric)
	protected.Get("/courses/:id/rubrics", evaluationHandler.GetCourseRubrics)

	// Project routes
	protected.Post("/projects", projectHandler.CreateProject)
	protected.Get("/projects", projectHandler.GetMyProjects)
	protected.Get("/projects/:id", projectHandler.GetProject)
	protected.Post("/projects/:id/leave", projectHandler.LeaveProject)
	protected.Post("/projects/:id/invite-links", projectHandler.CreateInvite)
	protected.Post("/join/:token", projectHandler.JoinByInvite)

	// Contribution routes
	protected.Post("/projects/:id/activity", contributionHandler.TrackActivity)
	protected.Get("/projects/:id/contributions", contributionHandler.GetBreakdown)
	protected.Get("/projects/:id/contributions/:user_id/history", contributionHandler.GetHistory)

	// Chat routes
	protected.Get("/projects/:id/messages", chatHandler.GetMessages)
	protected.Post("/projects/:id/messages", chatHandler.SendMessage)

	// Document routes
	protected.Post("/projects/:id/documents", documentHandler.Upload)
	protected.Get("/projects/:id/documents", documentHandler.ListProjectDocuments)
	protected.Post("/documents/:id/edits", documentHandler.SaveEdit)
	protected.Get("/documents/:id/download", documentHandler.Download)
	protected.Delete("/documents/:id", documentHandler.Delete)
	protected.Post("/documents/:id/share-links", documentHandler.CreateShareLink)

	// Task routes
	protected.Post("/projects/:id/tasks", taskHandler.CreateTask)
	protected.Get("/projects/:id/tasks", taskHandler.GetProjectTasks)
	protected.Patch("/tasks/:id/status", taskHandler.UpdateStatus)
	protected.Delete("/tasks/:id", taskHandler.DeleteTask)

	// Evaluation routes
	protected.Post("/projects/:id/evaluations", middleware.RequireRole(models.UserRoleFaculty), evaluationHandler.EvaluateProject)
	protected.Get("/projects/:id/evaluations", evaluationHandler.GetProjectEvaluations)

	// Call routes
	protected.Post("/projects/:id/call/join", callHandler.Join)
	protected.Post("/projects/:id/call/heartbeat", callHandler.Heartbeat)
	protected.Post("/projects/:id/call/leave", callHandler.Leave)
	protected.Get("/projects/:id/call/participants", callHandler.GetParticipants)

	// WebSocket route (websocket upgrade needs special handling)
	app.Use(
		"/ws",
		middleware.OriginAllowed(),
		middleware.AuthRequired(),
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "CollabHub is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
