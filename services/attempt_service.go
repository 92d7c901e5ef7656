package services

import (
	"errors"
	"time"

	"quizportal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptService records per-question answers and finalizes quiz
// submissions.
type AttemptService struct {
	db *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{db: db}
}

type RecordAnswerRequest struct {
	StudentID      uint          `json:"student_id" binding:"required"`
	QuestionID     uint          `json:"question_id" binding:"required"`
	SelectedOption models.Option `json:"selected_option" binding:"required"`
}

type SubmitQuizRequest struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// RecordAnswer scores the selection against the question's correct
// option and writes it as a single atomic upsert: the composite unique
// index on (student_id, question_id) guarantees exactly one row per
// pair even under concurrent calls.
func (s *AttemptService) RecordAnswer(quizID uint, req *RecordAnswerRequest) (*models.Answer, error) {
	if !req.SelectedOption.Valid() {
		return nil, ErrInvalidOption
	}

	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if err := checkQuizWindow(&quiz, time.Now()); err != nil {
		return nil, err
	}

	var question models.Question
	if err := s.db.Where("id = ? AND quiz_id = ?", req.QuestionID, quizID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	// A tag pointing at an empty slot is a bad request, not a scored
	// wrong answer.
	if !question.HasOption(req.SelectedOption) {
		return nil, ErrOptionUnavailable
	}

	isCorrect := req.SelectedOption == question.CorrectOption
	pointsEarned := 0
	if isCorrect {
		pointsEarned = question.Points
	}

	answer := models.Answer{
		StudentID:      req.StudentID,
		QuestionID:     req.QuestionID,
		QuizID:         quizID,
		SelectedOption: req.SelectedOption,
		IsCorrect:      isCorrect,
		PointsEarned:   pointsEarned,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option", "is_correct", "points_earned", "updated_at",
		}),
	}).Create(&answer).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the returned row carries the real ID and timestamps
	// regardless of whether the upsert inserted or updated.
	var persisted models.Answer
	if err := s.db.Where("student_id = ? AND question_id = ?", req.StudentID, req.QuestionID).
		First(&persisted).Error; err != nil {
		return nil, err
	}

	return &persisted, nil
}

// SubmitQuiz finalizes the student's attempt: it sums the recorded
// answer points and upserts the submission row, all inside one
// transaction. Unanswered questions simply contribute nothing; partial
// attempts may be finalized.
func (s *AttemptService) SubmitQuiz(quizID uint, req *SubmitQuizRequest) (*models.QuizSubmission, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	if err := checkQuizWindow(&quiz, time.Now()); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var totalPoints int64
		if err := tx.Model(&models.Answer{}).
			Where("student_id = ? AND quiz_id = ?", req.StudentID, quizID).
			Select("COALESCE(SUM(points_earned), 0)").
			Scan(&totalPoints).Error; err != nil {
			return err
		}

		now := time.Now()
		submission := models.QuizSubmission{
			StudentID:      req.StudentID,
			QuizID:         quizID,
			TotalPoints:    int(totalPoints),
			HasSubmitted:   true,
			SubmissionTime: &now,
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "quiz_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_points", "has_submitted", "submission_time", "updated_at",
			}),
		}).Create(&submission).Error
	})
	if err != nil {
		return nil, err
	}

	var persisted models.QuizSubmission
	if err := s.db.Where("student_id = ? AND quiz_id = ?", req.StudentID, quizID).
		First(&persisted).Error; err != nil {
		return nil, err
	}

	return &persisted, nil
}

// PreviousAnswers returns every answer the student has recorded for the
// quiz so far.
func (s *AttemptService) PreviousAnswers(quizID, studentID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Order("question_id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []models.Answer{}
	}
	return answers, nil
}
