package services

import (
	"errors"

	"quizportal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type QuestionRequest struct {
	Text          string              `json:"question_text" binding:"required"`
	Type          models.QuestionType `json:"question_type"`
	OptionA       string              `json:"option_a"`
	OptionB       string              `json:"option_b"`
	OptionC       *string             `json:"option_c"`
	OptionD       *string             `json:"option_d"`
	CorrectOption models.Option       `json:"correct_option" binding:"required"`
	Points        int                 `json:"points"`
}

// buildQuestion validates the request and fills in the model fields
// shared by create and update.
func buildQuestion(q *models.Question, req *QuestionRequest) error {
	qType := req.Type
	if qType == "" {
		qType = models.QuestionTypeMultipleChoice
	}
	if !qType.Valid() {
		return ErrInvalidQuestionType
	}
	if !req.CorrectOption.Valid() {
		return ErrCorrectOptionOutOfRange
	}

	points := req.Points
	if points <= 0 {
		points = 1
	}

	q.Text = req.Text
	q.Type = qType
	q.Points = points
	q.CorrectOption = req.CorrectOption

	if qType == models.QuestionTypeTrueFalse {
		// True/false questions carry fixed synthetic texts in the first
		// two slots; the correct tag may only address those.
		if req.CorrectOption != models.OptionA && req.CorrectOption != models.OptionB {
			return ErrCorrectOptionOutOfRange
		}
		q.OptionA = models.TrueOptionText
		q.OptionB = models.FalseOptionText
		q.OptionC = nil
		q.OptionD = nil
		return nil
	}

	if req.OptionA == "" || req.OptionB == "" {
		return ErrMissingOptions
	}
	// Slot D without slot C would leave a hole in the option array.
	if req.OptionD != nil && req.OptionC == nil {
		return ErrMissingOptions
	}

	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD

	if !q.HasOption(req.CorrectOption) {
		return ErrCorrectOptionOutOfRange
	}
	return nil
}

func (s *QuestionService) CreateQuestion(quizID uint, req *QuestionRequest) (*models.Question, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	question := models.Question{QuizID: quizID}
	if err := buildQuestion(&question, req); err != nil {
		return nil, err
	}

	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}

	return &question, nil
}

func (s *QuestionService) UpdateQuestion(quizID, questionID uint, req *QuestionRequest) (*models.Question, error) {
	var question models.Question
	if err := s.db.Where("id = ? AND quiz_id = ?", questionID, quizID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if err := buildQuestion(&question, req); err != nil {
		return nil, err
	}

	if err := s.db.Save(&question).Error; err != nil {
		return nil, err
	}

	return &question, nil
}

// DeleteQuestion removes the question and any answers recorded against
// it, in one transaction.
func (s *QuestionService) DeleteQuestion(quizID, questionID uint) error {
	var question models.Question
	if err := s.db.Where("id = ? AND quiz_id = ?", questionID, quizID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, questionID).Error
	})
}
