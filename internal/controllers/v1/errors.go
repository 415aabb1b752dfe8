package v1

import (
	"errors"
	"net/http"

	"github.com/finsync/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrNotAuthorized) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

// Payment errors
var errPayMonthNotSetInBody = errors.New("the month must be set in the request body")

// Member removal errors
var errRequesterIDParameter = errors.New("the requesterId parameter must be set")

// Import errors
var errImportNoCommitments = errors.New("you must send at least one commitment to this endpoint")
