package services

import (
	"testing"
	"time"

	"quizportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAnswerScoresSelection(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	question := createQuestion(t, db, quiz.ID, models.OptionC, 3)

	answer, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.OptionC,
	})
	require.NoError(t, err)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 3, answer.PointsEarned)
	assert.Equal(t, models.OptionC, answer.SelectedOption)

	answer, err = svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.OptionA,
	})
	require.NoError(t, err)
	assert.False(t, answer.IsCorrect)
	assert.Equal(t, 0, answer.PointsEarned)
}

func TestRecordAnswerKeepsOneRowPerPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	question := createQuestion(t, db, quiz.ID, models.OptionB, 2)

	for _, selection := range []models.Option{models.OptionA, models.OptionC, models.OptionB} {
		_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
			StudentID:      student.ID,
			QuestionID:     question.ID,
			SelectedOption: selection,
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Answer{}).
		Where("student_id = ? AND question_id = ?", student.ID, question.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The surviving row reflects the last call.
	var answer models.Answer
	require.NoError(t, db.Where("student_id = ? AND question_id = ?", student.ID, question.ID).
		First(&answer).Error)
	assert.Equal(t, models.OptionB, answer.SelectedOption)
	assert.True(t, answer.IsCorrect)
	assert.Equal(t, 2, answer.PointsEarned)
}

func TestRecordAnswerRejectsInvalidOption(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	question := createQuestion(t, db, quiz.ID, models.OptionA, 1)

	_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.Option("E"),
	})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestRecordAnswerRejectsEmptyOptionSlot(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)

	// Two-option question: slots C and D are empty.
	question := models.Question{
		QuizID:        quiz.ID,
		Text:          "Yes or no?",
		Type:          models.QuestionTypeMultipleChoice,
		OptionA:       "Yes",
		OptionB:       "No",
		CorrectOption: models.OptionA,
		Points:        1,
	}
	require.NoError(t, db.Create(&question).Error)

	_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.OptionC,
	})
	assert.ErrorIs(t, err, ErrOptionUnavailable)

	// A rejected selection records nothing.
	var count int64
	require.NoError(t, db.Model(&models.Answer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordAnswerEnforcesQuizWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")

	future := createQuiz(t, db, timePtr(time.Now().Add(time.Hour)), nil)
	futureQuestion := createQuestion(t, db, future.ID, models.OptionA, 1)
	_, err := svc.RecordAnswer(future.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     futureQuestion.ID,
		SelectedOption: models.OptionA,
	})
	assert.ErrorIs(t, err, ErrQuizNotStarted)

	past := createQuiz(t, db, nil, timePtr(time.Now().Add(-time.Hour)))
	pastQuestion := createQuestion(t, db, past.ID, models.OptionA, 1)
	_, err = svc.RecordAnswer(past.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     pastQuestion.ID,
		SelectedOption: models.OptionA,
	})
	assert.ErrorIs(t, err, ErrQuizEnded)
}

func TestRecordAnswerMissingQuizOrQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)

	_, err := svc.RecordAnswer(9999, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     1,
		SelectedOption: models.OptionA,
	})
	assert.ErrorIs(t, err, ErrQuizNotFound)

	_, err = svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     9999,
		SelectedOption: models.OptionA,
	})
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	// A question from another quiz is not reachable through this quiz.
	other := createQuiz(t, db, nil, nil)
	otherQuestion := createQuestion(t, db, other.ID, models.OptionA, 1)
	_, err = svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     otherQuestion.ID,
		SelectedOption: models.OptionA,
	})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestSubmitQuizSumsRecordedPoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	q1 := createQuestion(t, db, quiz.ID, models.OptionA, 1)
	q2 := createQuestion(t, db, quiz.ID, models.OptionB, 2)
	q3 := createQuestion(t, db, quiz.ID, models.OptionC, 1)

	// Two correct (1 point each), one wrong.
	for _, rec := range []struct {
		questionID uint
		selection  models.Option
	}{
		{q1.ID, models.OptionA},
		{q2.ID, models.OptionD},
		{q3.ID, models.OptionC},
	} {
		_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
			StudentID:      student.ID,
			QuestionID:     rec.questionID,
			SelectedOption: rec.selection,
		})
		require.NoError(t, err)
	}

	submission, err := svc.SubmitQuiz(quiz.ID, &SubmitQuizRequest{StudentID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, submission.TotalPoints)
	assert.True(t, submission.HasSubmitted)
	require.NotNil(t, submission.SubmissionTime)
}

func TestSubmitQuizAllowsPartialAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	q1 := createQuestion(t, db, quiz.ID, models.OptionA, 5)
	createQuestion(t, db, quiz.ID, models.OptionB, 5)

	_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     q1.ID,
		SelectedOption: models.OptionA,
	})
	require.NoError(t, err)

	// Second question never answered; it simply contributes nothing.
	submission, err := svc.SubmitQuiz(quiz.ID, &SubmitQuizRequest{StudentID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, submission.TotalPoints)
}

func TestSubmitQuizIsIdempotentInTotals(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	question := createQuestion(t, db, quiz.ID, models.OptionA, 4)

	_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.OptionA,
	})
	require.NoError(t, err)

	first, err := svc.SubmitQuiz(quiz.ID, &SubmitQuizRequest{StudentID: student.ID})
	require.NoError(t, err)
	second, err := svc.SubmitQuiz(quiz.ID, &SubmitQuizRequest{StudentID: student.ID})
	require.NoError(t, err)

	assert.Equal(t, first.TotalPoints, second.TotalPoints)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.QuizSubmission{}).
		Where("student_id = ? AND quiz_id = ?", student.ID, quiz.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitQuizRecomputesAfterChangedAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	quiz := createQuiz(t, db, nil, nil)
	question := createQuestion(t, db, quiz.ID, models.OptionB, 7)

	_, err := svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.OptionA,
	})
	require.NoError(t, err)

	submission, err := svc.SubmitQuiz(quiz.ID, &SubmitQuizRequest{StudentID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, submission.TotalPoints)

	_, err = svc.RecordAnswer(quiz.ID, &RecordAnswerRequest{
		StudentID:      student.ID,
		QuestionID:     question.ID,
		SelectedOption: models.OptionB,
	})
	require.NoError(t, err)

	submission, err = svc.SubmitQuiz(quiz.ID, &SubmitQuizRequest{StudentID: student.ID})
	require.NoError(t, err)
	assert.Equal(t, 7, submission.TotalPoints)
}

func TestSubmitQuizEnforcesQuizWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	student := createStudent(t, db, "Sara Ahmed", "1001")
	closed := createQuiz(t, db, nil, timePtr(time.Now().Add(-time.Minute)))

	_, err := svc.SubmitQuiz(closed.ID, &SubmitQuizRequest{StudentID: student.ID})
	assert.ErrorIs(t, err, ErrQuizEnded)

	_, err = svc.SubmitQuiz(9999, &SubmitQuizRequest{StudentID: student.ID})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestPreviousAnswersScopedToStudentAndQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttemptService(db)

	sara := createStudent(t, db, "Sara Ahmed", "1001")
	omar := createStudent(t, db, "Omar Khaled", "1002")
	quiz := createQuiz(t, db, nil, nil)
	other := createQuiz(t, db, nil, nil)
	q1 := createQuestion(t, db, quiz.ID, models.OptionA, 1)
	q2 := createQuestion(t, db, other.ID, models.OptionA, 1)

	for _, rec := range []struct {
		studentID  uint
		quizID     uint
		questionID uint
	}{
		{sara.ID, quiz.ID, q1.ID},
		{omar.ID, quiz.ID, q1.ID},
		{sara.ID, other.ID, q2.ID},
	} {
		_, err := svc.RecordAnswer(rec.quizID, &RecordAnswerRequest{
			StudentID:      rec.studentID,
			QuestionID:     rec.questionID,
			SelectedOption: models.OptionA,
		})
		require.NoError(t, err)
	}

	answers, err := svc.PreviousAnswers(quiz.ID, sara.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, q1.ID, answers[0].QuestionID)

	empty, err := svc.PreviousAnswers(9999, sara.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}
