package models

import (
	"time"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
)

func (t QuestionType) Valid() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeTrueFalse
}

// Fixed texts for the two slots of a true/false question.
const (
	TrueOptionText  = "True"
	FalseOptionText = "False"
)

type Question struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	QuizID        uint         `json:"quiz_id" gorm:"not null;index"`
	Text          string       `json:"question_text" gorm:"not null"`
	Type          QuestionType `json:"question_type" gorm:"not null;default:'multiple_choice'"`
	OptionA       string       `json:"option_a" gorm:"not null"`
	OptionB       string       `json:"option_b" gorm:"not null"`
	OptionC       *string      `json:"option_c"`
	OptionD       *string      `json:"option_d"`
	CorrectOption Option       `json:"correct_option" gorm:"type:varchar(1);not null"`
	Points        int          `json:"points" gorm:"not null;default:1"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// OptionTexts returns the four option slots in tag order. Slots C and D
// are nil for questions with fewer than four options.
func (q *Question) OptionTexts() [4]*string {
	return [4]*string{&q.OptionA, &q.OptionB, q.OptionC, q.OptionD}
}

// HasOption reports whether the tag references a non-nil option slot.
func (q *Question) HasOption(o Option) bool {
	idx := o.Index()
	if idx < 0 {
		return false
	}
	return q.OptionTexts()[idx] != nil
}
