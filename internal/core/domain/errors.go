package domain

import (
	"errors"
	"strings"
)

var (
	ErrLockedOut             = errors.New("account temporarily locked")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidServerResponse = errors.New("invalid server response")
	ErrNetwork               = errors.New("network error")
	ErrReviewCooldownActive  = errors.New("review cooldown active")
	ErrReviewDailyLimit      = errors.New("daily review limit reached")
	ErrValidation            = errors.New("validation failed")
	ErrUnauthorized          = errors.New("authentication required")
	ErrForbidden             = errors.New("access forbidden")
	ErrNotFound              = errors.New("not found")
	ErrNotAuthor             = errors.New("only the author may change this review")
	ErrOwnReview             = errors.New("cannot flag your own review")
	ErrInsufficientPoints    = errors.New("not enough points")
	ErrInvalidTransition     = errors.New("invalid flag transition")
	ErrLocationUnavailable   = errors.New("location unavailable")
	ErrRequestFailed         = errors.New("request failed")
)

// defaultMessages are shown when the backend did not supply its own text.
var defaultMessages = map[error]string{
	ErrLockedOut:             "Too many failed attempts. Please try again in 30 minutes.",
	ErrInvalidCredentials:    "The username or password is incorrect. Please try again.",
	ErrInvalidServerResponse: "The server returned an unexpected response.",
	ErrNetwork:               "Unable to reach the server. Check your connection and try again.",
	ErrReviewCooldownActive:  "You must wait before submitting another review for this eatery.",
	ErrReviewDailyLimit:      "Daily review limit reached.",
	ErrUnauthorized:          "Please sign in to continue.",
	ErrForbidden:             "You do not have permission to perform this action.",
	ErrNotFound:              "The requested item could not be found.",
	ErrInsufficientPoints:    "Not enough points to redeem this reward.",
	ErrRequestFailed:         "Something went wrong. Please try again.",
}

// Error is a classified failure. Reason is one of the sentinel errors above and
// is what errors.Is matches; Message is the user-facing text.
type Error struct {
	Reason  error
	Message string
	Cause   error
}

// NewError classifies cause under reason with an optional backend message.
func NewError(reason error, message string, cause error) *Error {
	return &Error{Reason: reason, Message: strings.TrimSpace(message), Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Reason.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += " (" + e.Cause.Error() + ")"
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Reason
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidationError reports local field failures. It never reaches the network.
func ValidationError(fields ...string) *Error {
	return NewError(ErrValidation, strings.Join(fields, "; "), nil)
}

// UserMessage returns text suitable for display for any error produced by this
// module.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		if de.Message != "" {
			return de.Message
		}
		if msg, ok := defaultMessages[de.Reason]; ok {
			return msg
		}
		return de.Reason.Error()
	}
	for reason, msg := range defaultMessages {
		if errors.Is(err, reason) {
			return msg
		}
	}
	return defaultMessages[ErrRequestFailed]
}
