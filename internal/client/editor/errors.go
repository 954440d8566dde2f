package editor

import (
	"errors"
	"fmt"

	"github.com/flashly/flashly/internal/client/models"
)

var (
	ErrMinimumEntries     = errors.New("you must have at least one flashcard")
	ErrPositionOutOfRange = errors.New("flashcard position out of range")
	ErrSyncInProgress     = errors.New("changes are already being saved")
	ErrSessionDiscarded   = errors.New("edit session was discarded")
	ErrSavedOrderFixed    = errors.New("saved flashcards keep their order, only new flashcards can be moved")

	ErrValidationFailed = errors.New("validation failed")
	ErrTransportFailure = errors.New("transport failure")
	ErrRemoteRejected   = errors.New("remote rejected changes")
)

// FailureKind classifies a failed synchronization.
type FailureKind int

const (
	ValidationFailed FailureKind = iota + 1
	TransportFailure
	RemoteRejected
)

func (k FailureKind) String() string {
	switch k {
	case ValidationFailed:
		return "ValidationFailed"
	case TransportFailure:
		return "TransportFailure"
	case RemoteRejected:
		return "RemoteRejected"
	default:
		return "Unknown"
	}
}

const (
	msgFixFields        = "Please fill in all questions and answers"
	msgTransportGeneric = "Could not reach the flashly server. Check your connection and try again."
	msgRemoteGeneric    = "Failed to update flashcards"
)

// SyncError is returned by Synchronize for every failure that leaves the
// working copy untouched. Fields is only set for ValidationFailed.
type SyncError struct {
	Kind    FailureKind
	Message string
	Fields  models.FieldErrors
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil && e.Kind != ValidationFailed {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SyncError) Unwrap() error { return e.Err }

func (e *SyncError) Is(target error) bool {
	switch target {
	case ErrValidationFailed:
		return e.Kind == ValidationFailed
	case ErrTransportFailure:
		return e.Kind == TransportFailure
	case ErrRemoteRejected:
		return e.Kind == RemoteRejected
	}
	return false
}
