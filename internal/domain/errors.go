package domain

import "errors"

// Workflow errors. Handlers map these to HTTP statuses in one place; services
// and the workflow core return them wrapped with context.
var (
	// ErrInvalidRequest means the request is malformed: unknown action,
	// stage out of range, or a kind/stage/action combination that does not
	// exist in the transition table.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized means the actor does not hold the capacity required
	// for the requested stage.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPreconditionFailed means the action exists but the document or
	// project is not in a state that permits it.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrStateConflict means the document's approval flags changed between
	// read and write; the caller should re-read and retry.
	ErrStateConflict = errors.New("state conflict")

	// ErrDeletionBlocked means the document has progressed past the point
	// where deletion is allowed.
	ErrDeletionBlocked = errors.New("deletion blocked")

	// ErrSideEffectFailure means the transition committed but a follow-up
	// side effect did not; reconciliation will repair it.
	ErrSideEffectFailure = errors.New("side effect failure")
)

// Entity and auth errors.
var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrProjectNotFound       = errors.New("project not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrBusinessAreaNotFound  = errors.New("business area not found")
	ErrDocumentAlreadyExists = errors.New("document already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserInactive          = errors.New("user inactive")
	ErrTokenExpired          = errors.New("token expired")
	ErrInvalidToken          = errors.New("invalid token")
)
