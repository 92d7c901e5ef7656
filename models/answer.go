package models

import (
	"time"
)

// Answer holds a student's latest selection for a question. The
// composite unique index backs the recorder's atomic upsert: at most
// one row can ever exist per (student, question) pair.
type Answer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StudentID      uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_answers_student_question"`
	QuestionID     uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_student_question"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index"`
	SelectedOption Option    `json:"selected_option" gorm:"type:varchar(1);not null"`
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`
	PointsEarned   int       `json:"points_earned" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
