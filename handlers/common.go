package handlers

import (
	"errors"
	"net/http"

	"quizportal/services"
)

// statusForError maps service sentinels onto the HTTP taxonomy:
// validation 400, credentials 401, availability 403, not found 404,
// anything else is a store failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidOption),
		errors.Is(err, services.ErrOptionUnavailable),
		errors.Is(err, services.ErrInvalidQuestionType),
		errors.Is(err, services.ErrMissingOptions),
		errors.Is(err, services.ErrCorrectOptionOutOfRange),
		errors.Is(err, services.ErrInvalidTimeWindow),
		errors.Is(err, services.ErrStudentHasRecords),
		errors.Is(err, services.ErrInvalidCSV):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNameMismatch),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrQuizNotStarted),
		errors.Is(err, services.ErrQuizEnded):
		return http.StatusForbidden
	case errors.Is(err, services.ErrQuizNotFound),
		errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrStudentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
