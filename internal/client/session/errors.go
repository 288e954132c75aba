package session

import (
	"errors"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
)

const (
	MsgServerDown      = "Server is not running. Please start the backend server."
	MsgUnavailable     = "Database is temporarily unavailable. Please try again later."
	MsgLoginFailed     = "Login failed"
	MsgSignupFailed    = "Signup failed"
	MsgUpdateFailed    = "Update failed"
	MsgUploadFailed    = "Failed to upload profile picture. Please try again."
	MsgDeleteFailed    = "Failed to delete profile picture. Please try again."
	MsgNotAnImage      = "Please select an image file."
	MsgPictureTooLarge = "Profile picture must be 5 MB or smaller."
)

var (
	ErrNotAnImage      = errors.New("file is not an image")
	ErrPictureTooLarge = errors.New("file is too large")
)

// OpError is a failed Store operation. Error returns the message meant for
// the user; the underlying cause is available through Unwrap.
type OpError struct {
	Op      string
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return e.Message
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// authMessage picks the user-facing message of a failed login or signup.
func authMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, client.ErrConnection):
		return MsgServerDown
	case errors.Is(err, client.ErrUnavailable):
		return MsgUnavailable
	}
	if msg, ok := client.BackendMessage(err); ok {
		return msg
	}
	return fallback
}

func backendOr(err error, fallback string) string {
	if msg, ok := client.BackendMessage(err); ok {
		return msg
	}
	return fallback
}
