package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown when a failure carries no server message.
const FallbackMessage = "Could not reach the server"

// RemoteError is a non-2xx answer from the backend.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// Message extracts the user-facing text for err.
func Message(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.Message != "" {
			return remote.Message
		}
		if text := http.StatusText(remote.Status); text != "" {
			return text
		}
	}
	return FallbackMessage
}

// IsStatus reports whether err is a RemoteError with the given status.
func IsStatus(err error, status int) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status == status
}
