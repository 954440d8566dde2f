package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flashly/flashly/internal/common"
)

var (
	ErrTransport      = common.ErrTransport
	ErrRemoteRejected = common.ErrRemoteRejected
	ErrUnauthorized   = common.ErrorUnauthorized
	ErrNotFound       = common.ErrorNotFound

	ErrNoAccessToken = errors.New("login response carried no access token")
)

// RemoteError is a non-success HTTP response.
type RemoteError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Status, e.Message)
}

// RemoteMessage is the message to show the user.
func (e *RemoteError) RemoteMessage() string { return e.Message }

func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemoteRejected:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// remoteErrorMessage picks error, then message, then msg from a JSON body,
// falling back to "HTTP <code>: <status text>".
func remoteErrorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "message", "msg"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
