package errors

import "errors"

// This package defines a centralized set of sentinel errors for the
// application. Services return these (wrapped with context via fmt.Errorf and
// %w), and the API layer checks them with errors.Is() to pick the HTTP status,
// keeping business logic free of transport concerns.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Also returned for chat resources that exist but belong to another user,
	// so their existence is not leaked. Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// business rule validation. Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current
	// state of a resource, such as registering an email that is already
	// taken. Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthenticated signifies a missing, malformed, expired or otherwise
	// invalid bearer credential. Mapped to 401 Unauthorized.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrPermission signifies that the authenticated user is not allowed to
	// perform the requested action, including access to an inactive account
	// and reads of another user's query records. Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected server-side error. The generic
	// message prevents leaking implementation details to the client.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
