package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/salary-predictor/internal/inference"
	"github.com/jonathan/salary-predictor/internal/schemas"
)

// ErrRequestBody indicates the request body could not be read or decoded
type ErrRequestBody struct {
	Cause error
}

func (e *ErrRequestBody) Error() string {
	return "invalid request body: " + e.Cause.Error()
}

func (e *ErrRequestBody) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *schemas.ValidationError
		inferenceErr  *inference.InferenceError
		bodyErr       *ErrRequestBody
		tooLarge      *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &bodyErr), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, inference.ErrModelUnavailable):
		return http.StatusInternalServerError
	case errors.As(err, &inferenceErr):
		// Deterministic for a given input, so reported as a client error.
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string               `json:"error"`
	Details []schemas.FieldError `json:"details,omitempty"`
}

// errorBody builds the client-facing message for err.
func errorBody(err error) ErrorBody {
	var (
		validationErr *schemas.ValidationError
		inferenceErr  *inference.InferenceError
	)
	switch {
	case errors.As(err, &validationErr):
		return ErrorBody{
			Error:   "Invalid employee data: " + validationErr.Summary(),
			Details: validationErr.Errors,
		}
	case errors.Is(err, inference.ErrModelUnavailable):
		return ErrorBody{Error: inference.ModelUnavailableMessage}
	case errors.As(err, &inferenceErr):
		return ErrorBody{Error: "Error making prediction: " + inferenceErr.Cause.Error()}
	default:
		return ErrorBody{Error: err.Error()}
	}
}
