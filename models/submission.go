package models

import (
	"time"
)

// QuizSubmission is the finalized, scored record of a student's attempt
// at a quiz. TotalPoints is a snapshot taken at finalization time, not
// a live view over the answer rows.
type QuizSubmission struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	StudentID      uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_submissions_student_quiz"`
	QuizID         uint       `json:"quiz_id" gorm:"not null;uniqueIndex:idx_submissions_student_quiz"`
	TotalPoints    int        `json:"total_points" gorm:"not null"`
	HasSubmitted   bool       `json:"has_submitted" gorm:"not null;default:false"`
	SubmissionTime *time.Time `json:"submission_time"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
