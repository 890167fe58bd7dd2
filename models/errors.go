package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")

	// InvariantViolationError is rendered with the http status code 422. It means the caller
	// sent an inconsistent request, and is always reported.
	InvariantViolationError = errors.New("invariant violation")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Asset list related errors
var (
	ErrListTypeLocked = errors.Wrap(ForbiddenError,
		"the list type cannot be changed once the list has collaborators")
	ErrOwnerCannotBeMember   = errors.Wrap(BadParameterError, "the list owner cannot be added as a member")
	ErrAssetAlreadyInSection = errors.Wrap(ConflictError, "this asset is already in the user's section of the list")
	ErrMemberAlreadyExists   = errors.Wrap(ConflictError, "this user is already a member of the list")
)

// Ordering related errors
var (
	ErrGroupListMismatch  = errors.Wrap(InvariantViolationError, "the group belongs to a different list than the item")
	ErrPositionOutOfRange = errors.Wrap(BadParameterError, "position index out of range")
)

// Suggestion related errors
var (
	ErrDuplicateSuggestion = errors.Wrap(ConflictError,
		"a pending suggestion already exists for this asset, kind and target user")
	ErrSuggestionNotPending         = errors.Wrap(ConflictError, "the suggestion has already been resolved")
	ErrSuggestionToSelf             = errors.Wrap(BadParameterError, "a suggestion cannot target its own proposer")
	ErrSuggestionTargetHasNoSection = errors.Wrap(BadParameterError,
		"the target user has no write access to this list")
)

type FieldValidationError map[string]string

func (e FieldValidationError) Error() string {
	return fmt.Sprintf("%v", map[string]string(e))
}
