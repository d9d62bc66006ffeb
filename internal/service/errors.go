package service

import (
	"fmt"

	"buddylist/backend/internal/models"

	"github.com/pkg/errors"
)

// Kind classifies a service error. Handlers map kinds to transport codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthorization
	KindNotFound
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is a caller-visible failure. Two errors are the same failure when
// their codes match, so sentinels work with errors.Is even when the
// returned value carries extra detail.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	// Status is the status of the edge that already exists. Set only for
	// DUPLICATE_EDGE.
	Status models.FriendshipStatus
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrSelfReference    = newError(KindValidation, "SELF_REFERENCE", "cannot send a friend request to yourself")
	ErrUnknownTarget    = newError(KindNotFound, "UNKNOWN_TARGET", "user not found")
	ErrDuplicateEdge    = newError(KindConflict, "DUPLICATE_EDGE", "a relationship with this user already exists")
	ErrPermissionDenied = newError(KindAuthorization, "PERMISSION_DENIED", "cannot send friend request")
	ErrNotFound         = newError(KindNotFound, "NOT_FOUND", "friendship not found")
	ErrNotAuthorized    = newError(KindAuthorization, "NOT_AUTHORIZED", "not authorized to accept this request")
	ErrAlreadyAccepted  = newError(KindConflict, "ALREADY_ACCEPTED", "friend request already accepted")
	ErrInvalidCriteria  = newError(KindValidation, "INVALID_CRITERIA", "friend id or request id is required")

	ErrInvalidType = newError(KindValidation, "INVALID_TYPE", "invalid status type")
	ErrTextTooLong = newError(KindValidation, "TEXT_TOO_LONG",
		fmt.Sprintf("status text must be %d characters or less", models.MaxStatusTextLength))

	ErrQueryTooShort = newError(KindValidation, "QUERY_TOO_SHORT",
		fmt.Sprintf("search query must be at least %d characters", MinSearchQueryLength))

	ErrInvalidEmail       = newError(KindValidation, "INVALID_EMAIL", "invalid email address")
	ErrInvalidUsername    = newError(KindValidation, "INVALID_USERNAME", "username must be 3-100 characters of letters, digits, dots, dashes or underscores")
	ErrPasswordTooShort   = newError(KindValidation, "PASSWORD_TOO_SHORT", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	ErrEmailTaken         = newError(KindConflict, "EMAIL_TAKEN", "email already registered")
	ErrUsernameTaken      = newError(KindConflict, "USERNAME_TAKEN", "username already taken")
	ErrInvalidCredentials = newError(KindUnauthenticated, "INVALID_CREDENTIALS", "invalid email or password")
	ErrUnauthenticated    = newError(KindUnauthenticated, "UNAUTHENTICATED", "not authenticated")
)

// duplicateEdge reports the status of the edge that blocked a new request.
func duplicateEdge(status models.FriendshipStatus) *Error {
	msg := "a relationship with this user already exists"
	switch status {
	case models.StatusPending:
		msg = "friend request already pending"
	case models.StatusAccepted:
		msg = "already friends"
	}
	return &Error{Kind: KindConflict, Code: ErrDuplicateEdge.Code, Message: msg, Status: status}
}

// KindOf returns the kind of err, or KindInternal for errors that did not
// originate as a service Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsError extracts the service Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
