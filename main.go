package main

import (
	"log"

	"quizportal/config"
	"quizportal/handlers"
	"quizportal/models"
	"quizportal/routes"
	"quizportal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.QuizSubmission{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	sessions := services.NewSessionStore(redisClient, cfg.SessionTTL)
	authService := services.NewAuthService(db, sessions, cfg.JWTSecret, cfg.SessionTTL)
	quizService := services.NewQuizService(db)
	questionService := services.NewQuestionService(db)
	attemptService := services.NewAttemptService(db)
	leaderboardService := services.NewLeaderboardService(db)
	studentService := services.NewStudentService(db)

	// Seed the bootstrap admin account if configured
	if err := authService.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Initialize WebSocket hub for live leaderboards
	hub := services.NewHub(leaderboardService)
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	attemptHandler := handlers.NewAttemptHandler(attemptService, hub)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	studentHandler := handlers.NewStudentHandler(studentService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, questionHandler, attemptHandler, leaderboardHandler, studentHandler, hub, quizService, authService)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
