package models

import (
	"github.com/cockroachdb/errors"
)

// Base error kinds. Every error returned by the dispute service wraps exactly one of them.
var (
	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// InvalidTransitionError is rendered with the http status code 409
	InvalidTransitionError = errors.New("invalid transition")

	// InvalidPayloadError is rendered with the http status code 400
	InvalidPayloadError = errors.New("invalid payload")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("conflict")

	// DuplicateEmailError is rendered with the http status code 409
	DuplicateEmailError = errors.New("duplicate email")

	// DefendantAlreadyAssignedError is rendered with the http status code 409
	DefendantAlreadyAssignedError = errors.New("defendant already assigned")

	// UpstreamFailureError is rendered with the http status code 502
	UpstreamFailureError = errors.New("upstream failure")
)

// Case related errors
var (
	ErrCaseNotFound       = errors.Wrap(NotFoundError, "case not found")
	ErrInvitationNotFound = errors.Wrap(NotFoundError, "invitation not found")
	ErrUserNotFound       = errors.Wrap(NotFoundError, "user not found")
	ErrLandNotFound       = errors.Wrap(NotFoundError, "land record not found")

	ErrStaleCase        = errors.Wrap(ConflictError, "case was modified concurrently, reload and retry")
	ErrDuplicateClaimID = errors.Wrap(ConflictError, "claim id already in use")

	ErrLetterRequired = errors.Wrap(InvalidPayloadError, "a signed and stamped letter is required")
	ErrNoDocuments    = errors.Wrap(InvalidPayloadError, "at least one document is required")
	ErrNoRecipients   = errors.Wrap(InvalidPayloadError, "at least one recipient type is required")

	ErrTokenExpired = errors.Wrap(InvalidPayloadError, "token expired")
	ErrTokenInvalid = errors.Wrap(InvalidPayloadError, "token invalid")
)

// ErrorKind returns the stable name of the base kind wrapped by err, or "Internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, NotFoundError):
		return "NotFound"
	case errors.Is(err, ForbiddenError):
		return "Forbidden"
	case errors.Is(err, InvalidTransitionError):
		return "InvalidTransition"
	case errors.Is(err, InvalidPayloadError):
		return "InvalidPayload"
	case errors.Is(err, DuplicateEmailError):
		return "DuplicateEmail"
	case errors.Is(err, DefendantAlreadyAssignedError):
		return "DefendantAlreadyAssigned"
	case errors.Is(err, ConflictError):
		return "Conflict"
	case errors.Is(err, UpstreamFailureError):
		return "UpstreamFailure"
	default:
		return "Internal"
	}
}
