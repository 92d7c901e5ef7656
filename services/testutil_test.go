package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"quizportal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Student{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.QuizSubmission{},
	))

	return db
}

func createStudent(t *testing.T, db *gorm.DB, name, nationalID string) *models.Student {
	t.Helper()
	student := models.Student{FullName: name, NationalID: nationalID}
	require.NoError(t, db.Create(&student).Error)
	return &student
}

func createQuiz(t *testing.T, db *gorm.DB, start, end *time.Time) *models.Quiz {
	t.Helper()
	quiz := models.Quiz{Title: "Chapter review", StartTime: start, EndTime: end}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func createQuestion(t *testing.T, db *gorm.DB, quizID uint, correct models.Option, points int) *models.Question {
	t.Helper()
	optC := "Paris"
	optD := "Rome"
	question := models.Question{
		QuizID:        quizID,
		Text:          "Pick one",
		Type:          models.QuestionTypeMultipleChoice,
		OptionA:       "London",
		OptionB:       "Berlin",
		OptionC:       &optC,
		OptionD:       &optD,
		CorrectOption: correct,
		Points:        points,
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func timePtr(t time.Time) *time.Time {
	return &t
}
