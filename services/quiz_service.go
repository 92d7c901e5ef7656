package services

import (
	"errors"
	"time"

	"quizportal/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	VideoURL    string     `json:"video_url"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

type UpdateQuizRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	VideoURL    string     `json:"video_url"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

func validateWindowBounds(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return ErrInvalidTimeWindow
	}
	return nil
}

// checkQuizWindow rejects activity outside the [start, end] interval.
// A nil bound leaves that side open.
func checkQuizWindow(quiz *models.Quiz, now time.Time) error {
	if quiz.StartTime != nil && now.Before(*quiz.StartTime) {
		return ErrQuizNotStarted
	}
	if quiz.EndTime != nil && now.After(*quiz.EndTime) {
		return ErrQuizEnded
	}
	return nil
}

func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (*models.Quiz, error) {
	if err := validateWindowBounds(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}

	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}

	return &quiz, nil
}

func (s *QuizService) GetQuizzes() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// GetQuizByID returns the quiz together with its questions, oldest
// question first.
func (s *QuizService) GetQuizByID(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(quizID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	if err := validateWindowBounds(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.VideoURL = req.VideoURL
	quiz.StartTime = req.StartTime
	quiz.EndTime = req.EndTime

	if err := s.db.Save(&quiz).Error; err != nil {
		return nil, err
	}

	return &quiz, nil
}

// DeleteQuiz removes the quiz and everything hanging off it. The cascade
// runs in one transaction so a failed delete leaves the quiz intact.
func (s *QuizService) DeleteQuiz(quizID uint) error {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuizNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.QuizSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, quizID).Error
	})
}
