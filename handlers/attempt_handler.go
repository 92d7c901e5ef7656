package handlers

import (
	"net/http"
	"strconv"

	"quizportal/services"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	attemptService *services.AttemptService
	hub            *services.Hub
}

func NewAttemptHandler(attemptService *services.AttemptService, hub *services.Hub) *AttemptHandler {
	return &AttemptHandler{
		attemptService: attemptService,
		hub:            hub,
	}
}

// sessionStudentID returns the student behind the validated session.
func sessionStudentID(c *gin.Context) (uint, bool) {
	id, exists := c.Get("subject_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return 0, false
	}
	studentID, ok := id.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return 0, false
	}
	return studentID, true
}

func (h *AttemptHandler) RecordAnswer(c *gin.Context) {
	studentID, ok := sessionStudentID(c)
	if !ok {
		return
	}
	quizID, ok := parseID(c, "quizId")
	if !ok {
		return
	}

	var req services.RecordAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID, question ID, and selected option are required"})
		return
	}

	if req.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Student ID does not match session"})
		return
	}

	answer, err := h.attemptService.RecordAnswer(quizID, &req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"answer": answer})
}

func (h *AttemptHandler) SubmitQuiz(c *gin.Context) {
	studentID, ok := sessionStudentID(c)
	if !ok {
		return
	}
	quizID, ok := parseID(c, "quizId")
	if !ok {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID is required"})
		return
	}

	if req.StudentID != studentID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Student ID does not match session"})
		return
	}

	submission, err := h.attemptService.SubmitQuiz(quizID, &req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	// Push the fresh standings to live leaderboard watchers.
	if h.hub != nil {
		h.hub.BroadcastLeaderboard(quizID)
	}

	c.JSON(http.StatusCreated, gin.H{"submission": submission})
}

func (h *AttemptHandler) GetPreviousAnswers(c *gin.Context) {
	sessionID, ok := sessionStudentID(c)
	if !ok {
		return
	}
	quizID, ok := parseID(c, "quizId")
	if !ok {
		return
	}

	studentParam := c.Query("student_id")
	if studentParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID is required"})
		return
	}
	studentID, err := strconv.ParseUint(studentParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	if uint(studentID) != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Student ID does not match session"})
		return
	}

	answers, err := h.attemptService.PreviousAnswers(quizID, uint(studentID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": answers})
}
