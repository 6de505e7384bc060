package errors

import "net/http"

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
)

var (
	// ErrMissingQueries is returned by the query functions when fromQ or toQ
	// is blank.
	ErrMissingQueries = New(
		CodeValidation,
		"fromQ and toQ are required",
		http.StatusBadRequest,
	)

	// ErrMissingEndpoints is what the journey store reports when the user
	// has not filled in both departure and arrival.
	ErrMissingEndpoints = New(
		CodeValidation,
		"Please enter both departure and arrival.",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUpstream = New(
		CodeUpstream,
		"Journey planning backend request failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		CodeInternal,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
