package domain

import "errors"

// ErrRecordNotFound is returned by repositories when no record matches.
var ErrRecordNotFound = errors.New("record not found")

// ErrSessionClosed is returned by session stores when a logout is already
// recorded for the session being closed.
var ErrSessionClosed = errors.New("session already closed")

// Token codec failures. Expiry is reported apart from every other defect.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// ErrorKind identifies a failure independently of its code, since codes are
// only unique within a category (signup and signout both use SGR-).
type ErrorKind int

const (
	KindDuplicateUsername ErrorKind = iota + 1
	KindDuplicateEmail
	KindUnknownUser
	KindBadCredentials
	KindMissingToken
	KindInvalidToken
	KindAlreadySignedOut
	KindNotSignedIn
	KindSignedOut
	KindSessionExpired
	KindForbidden
	KindUserNotFound
	KindAnswerNotFound
	KindInvalidQuestion
)

// Error is an expected failure with a stable code and a human-readable message.
// Callers surface both verbatim.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Is matches any *Error of the same kind, so a sentinel still matches after
// WithMessage.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithMessage returns a copy of e carrying a different message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg}
}

// Signup.
var (
	ErrDuplicateUsername = &Error{KindDuplicateUsername, "SGR-001", "Try any other Username, this Username has already been taken"}
	ErrDuplicateEmail    = &Error{KindDuplicateEmail, "SGR-002", "This user has already been registered, try with any other emailId"}
)

// Signin.
var (
	ErrUnknownUser    = &Error{KindUnknownUser, "ATH-001", "This username does not exist"}
	ErrBadCredentials = &Error{KindBadCredentials, "ATH-002", "Password Failed"}
)

// Signout.
var (
	ErrAlreadySignedOut = &Error{KindAlreadySignedOut, "SGR-001", "User is not Signed in"}
	ErrMissingToken     = &Error{KindMissingToken, "SGR-002", "Authorization Access Token is null"}
	ErrInvalidToken     = &Error{KindInvalidToken, "SGR-003", "Invalid Access Token"}
)

// Authorization.
var (
	ErrNotSignedIn    = &Error{KindNotSignedIn, "ATHR-001", "User has not signed in"}
	ErrSignedOut      = &Error{KindSignedOut, "ATHR-002", "User is signed out"}
	ErrForbidden      = &Error{KindForbidden, "ATHR-003", "Unauthorized Access"}
	ErrSessionExpired = &Error{KindSessionExpired, "ATHR-004", "User session has expired. Sign in again"}
)

// Resources.
var (
	ErrUserNotFound    = &Error{KindUserNotFound, "USR-001", "User with entered uuid to be deleted does not exist"}
	ErrAnswerNotFound  = &Error{KindAnswerNotFound, "ANS-001", "Entered answer uuid does not exist"}
	ErrInvalidQuestion = &Error{KindInvalidQuestion, "QUES-001", "The question entered is invalid"}
)
