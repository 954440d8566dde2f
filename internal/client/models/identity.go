package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Origin tells whether a flashcard already exists on the server or was
// created locally and still waits for its first synchronization.
type Origin int

const (
	OriginPersisted Origin = iota
	OriginPendingNew
)

func (o Origin) String() string {
	switch o {
	case OriginPersisted:
		return "persisted"
	case OriginPendingNew:
		return "pending-new"
	default:
		return "unknown"
	}
}

// ServerID is an identifier issued by the flashly API. The API has used both
// integer and UUID keys, so it is decoded from either a JSON number or string.
type ServerID string

var ErrEmptyServerID = errors.New("empty server id")

func (id *ServerID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ErrEmptyServerID
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return ErrEmptyServerID
		}
		*id = ServerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("server id must be a string or number: %w", err)
	}
	*id = ServerID(n.String())
	return nil
}

// Identity is either a persisted server id or a session-local placeholder.
// Exactly one of the two fields is set; the zero value is invalid.
type Identity struct {
	server  ServerID
	pending string
}

// PersistedID wraps an identifier issued by the server.
func PersistedID(id ServerID) Identity {
	return Identity{server: id}
}

// PendingID wraps a placeholder token generated by the client. It never
// leaves the process as a server id.
func PendingID(token string) Identity {
	return Identity{pending: token}
}

func (i Identity) Origin() Origin {
	if i.pending != "" {
		return OriginPendingNew
	}
	return OriginPersisted
}

func (i Identity) IsPending() bool { return i.Origin() == OriginPendingNew }

func (i Identity) IsZero() bool { return i.server == "" && i.pending == "" }

// ServerID returns the server identifier and true for persisted identities.
func (i Identity) ServerID() (ServerID, bool) {
	if i.IsPending() || i.server == "" {
		return "", false
	}
	return i.server, true
}

func (i Identity) String() string {
	if i.IsPending() {
		return "new:" + i.pending
	}
	return string(i.server)
}

// OriginOf classifies a flashcard by its identity.
func OriginOf(c Flashcard) Origin {
	return c.ID.Origin()
}
