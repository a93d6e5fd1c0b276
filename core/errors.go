// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ValidationError is returned for malformed or missing input. It maps to
// http.StatusBadRequest.
type ValidationError struct {
	Message string
	// Details holds individual problems, e.g. the errors reported by a json schema
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// NotFoundError is returned when the addressed resource does not exist. It maps to
// http.StatusNotFound.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// AuthorizationError is returned when the caller lacks the required role or
// identity. It maps to http.StatusUnauthorized.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewValidationError returns a ValidationError with a formatted message
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError returns a NotFoundError with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// NewAuthorizationError returns an AuthorizationError with a formatted message
func NewAuthorizationError(format string, args ...interface{}) error {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode returns the http status code for err. Errors outside of the
// taxonomy are internal server errors.
func StatusCode(err error) int {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var authErr *AuthorizationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// IsValidation returns true if err is or wraps a ValidationError
func IsValidation(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}
