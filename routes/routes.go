package routes

import (
	"log"
	"net/http"
	"strconv"

	"quizportal/handlers"
	"quizportal/middleware"
	"quizportal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	attemptHandler *handlers.AttemptHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	studentHandler *handlers.StudentHandler,
	hub *services.Hub,
	quizService *services.QuizService,
	authService *services.AuthService,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/student/login", authHandler.StudentLogin)
			auth.POST("/logout", authHandler.Logout)
		}

		adminOnly := middleware.RequireRole(authService, services.RoleAdmin)
		studentOnly := middleware.RequireRole(authService, services.RoleStudent)

		// Quiz routes
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.GetQuizzes)
			quizzes.GET("/:quizId", quizHandler.GetQuizByID)
			quizzes.GET("/:quizId/leaderboard", leaderboardHandler.GetLeaderboard)

			quizzes.POST("", adminOnly, quizHandler.CreateQuiz)
			quizzes.PUT("/:quizId", adminOnly, quizHandler.UpdateQuiz)
			quizzes.DELETE("/:quizId", adminOnly, quizHandler.DeleteQuiz)

			quizzes.POST("/:quizId/questions", adminOnly, questionHandler.CreateQuestion)
			quizzes.PUT("/:quizId/questions/:questionId", adminOnly, questionHandler.UpdateQuestion)
			quizzes.DELETE("/:quizId/questions/:questionId", adminOnly, questionHandler.DeleteQuestion)

			quizzes.POST("/:quizId/answers", studentOnly, attemptHandler.RecordAnswer)
			quizzes.POST("/:quizId/submit", studentOnly, attemptHandler.SubmitQuiz)
			quizzes.GET("/:quizId/previous-answers", studentOnly, attemptHandler.GetPreviousAnswers)
		}

		// Student management routes (admin)
		students := api.Group("/students")
		students.Use(adminOnly)
		{
			students.GET("", studentHandler.GetStudents)
			students.POST("", studentHandler.CreateStudent)
			students.POST("/import", studentHandler.ImportStudents)
			students.PUT("/:studentId", studentHandler.UpdateStudent)
			students.DELETE("/:studentId", studentHandler.DeleteStudent)
		}
	}

	// WebSocket endpoint for live leaderboard updates
	router.GET("/ws/quizzes/:quizId/leaderboard", func(c *gin.Context) {
		quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
			return
		}

		// The quiz must exist before we hold a socket open for it.
		if _, err := quizService.GetQuizByID(uint(quizID)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for quiz %d: %v", quizID, err)
			return
		}

		hub.RegisterClient(conn, uint(quizID))
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
