// Package server provides the HTTP REST API for the intelligence engine.
package server

import (
	"fmt"
	"net/http"

	"github.com/hykwon-dot/lira-intel/internal/validation"
)

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrPersistenceDisabled indicates the endpoint requires a configured database
type ErrPersistenceDisabled struct{}

func (e *ErrPersistenceDisabled) Error() string {
	return "analysis persistence requires a configured database"
}

// ErrUnknownCategory indicates an unregistered scenario category
type ErrUnknownCategory struct {
	Category string
}

func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("unknown scenario category: %s", e.Category)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if validation.IsInvalidInput(err) {
		return http.StatusBadRequest
	}
	switch err.(type) {
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrUnknownCategory:
		return http.StatusBadRequest
	case *ErrPersistenceDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
