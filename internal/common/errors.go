// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Input errors. These are fatal and surfaced before any classification runs.
	ErrDogFile  = errors.New("dog name file unreadable")
	ErrImageDir = errors.New("image directory unreadable")
	ErrNoImages = errors.New("no images to classify")

	// Classification errors.
	ErrClassificationFailed = errors.New("classification failed")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsConfigError reports whether err stems from bad configuration or unreadable
// inputs rather than from the classifier.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrDogFile) ||
		errors.Is(err, ErrImageDir) ||
		errors.Is(err, ErrNoImages)
}
