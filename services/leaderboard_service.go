package services

import (
	"quizportal/models"

	"gorm.io/gorm"
)

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

type LeaderboardEntry struct {
	StudentID   uint   `json:"student_id"`
	FullName    string `json:"full_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

// GetLeaderboard returns the completed submissions for a quiz sorted by
// total points descending, with dense 1-based ranks assigned by
// position. Ties are broken by earlier submission time, then student
// ID, so the ordering is deterministic.
func (s *LeaderboardService) GetLeaderboard(quizID uint) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := s.db.Model(&models.QuizSubmission{}).
		Select("quiz_submissions.student_id, students.full_name, quiz_submissions.total_points").
		Joins("JOIN students ON students.id = quiz_submissions.student_id").
		Where("quiz_submissions.quiz_id = ? AND quiz_submissions.has_submitted = ?", quizID, true).
		Order("quiz_submissions.total_points DESC, quiz_submissions.submission_time ASC, quiz_submissions.student_id ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []LeaderboardEntry{}
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}
