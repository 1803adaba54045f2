package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate project code)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidStatusTransition is returned for a disallowed status change
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrLineProjectMismatch is returned when an invoice references a budget
	// line that does not belong to the invoice's project. The write is refused
	// rather than aggregated across the wrong line.
	ErrLineProjectMismatch = errors.New("budget line does not belong to the invoice's project")

	// ErrEmailNotFound is returned by auto-match when no payee has the
	// submitted email
	ErrEmailNotFound = errors.New("no payee found for this email address")

	// ErrProjectCodeMismatch is returned by auto-match when the project code
	// does not resolve within the payee's owner. It deliberately does not
	// distinguish a missing code from a code under another owner.
	ErrProjectCodeMismatch = errors.New("project code not recognized for this payee")
)
