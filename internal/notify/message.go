// Package notify carries transient user-facing messages and drives their
// timed dismissal.
package notify

import "errors"

// Kind classifies a message for presentation.
type Kind string

const (
	// KindNone is the default for messages published without a kind.
	KindNone    Kind = ""
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// FullWidth is the remaining width of a freshly published message.
const FullWidth = 100

// Message is a toast as seen by subscribers.
type Message struct {
	Title          string `json:"title"`
	Content        string `json:"content"`
	Kind           Kind   `json:"kind"`
	Visible        bool   `json:"visible"`
	RemainingWidth int    `json:"remainingWidth"`

	seq uint64
}

// ErrorTitle is the title used for every remote failure.
const ErrorTitle = "Error"

// Error builds an error message with the standard title.
func Error(content string) Message {
	return Message{Title: ErrorTitle, Content: content, Kind: KindError}
}

// Success builds a success message.
func Success(title, content string) Message {
	return Message{Title: title, Content: content, Kind: KindSuccess}
}

type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

// Shown marks err as already published on the bus. A nil err stays nil.
func Shown(err error) error {
	if err == nil {
		return nil
	}
	return shownError{err}
}

// WasShown reports whether err, or any error it wraps, was marked by Shown.
func WasShown(err error) bool {
	var shown shownError
	return errors.As(err, &shown)
}
