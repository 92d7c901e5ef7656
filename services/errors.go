package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses; anything else is treated as a store failure.
var (
	// Not found
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrStudentNotFound  = errors.New("student not found")

	// Availability (quiz window)
	ErrQuizNotStarted = errors.New("quiz has not started yet")
	ErrQuizEnded      = errors.New("quiz has ended")

	// Validation
	ErrInvalidOption           = errors.New("selected option must be A, B, C, or D")
	ErrOptionUnavailable       = errors.New("selected option is not available for this question")
	ErrInvalidQuestionType     = errors.New("question type must be multiple_choice or true_false")
	ErrMissingOptions          = errors.New("options A and B are required")
	ErrCorrectOptionOutOfRange = errors.New("correct option must reference an available option")
	ErrInvalidTimeWindow       = errors.New("start time must not be after end time")
	ErrStudentHasRecords       = errors.New("student has recorded answers or submissions")
	ErrInvalidCSV              = errors.New("CSV must include full_name and national_id columns")

	// Credentials
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNameMismatch       = errors.New("national ID does not match the provided name")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
