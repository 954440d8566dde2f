package editor

import (
	"context"
	"errors"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/common"
	"github.com/flashly/flashly/internal/logging"
)

// Remote applies a change set to a study set's collection in one request and
// returns the full canonical collection afterwards.
type Remote interface {
	SyncFlashcards(ctx context.Context, setID models.ServerID, changes models.ChangeSet) ([]models.Flashcard, error)
}

// Coordinator runs validate, diff, submit and reconcile for edit sessions.
type Coordinator struct {
	remote Remote
	logger logging.Logger
}

func NewCoordinator(remote Remote, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coordinator{remote: remote, logger: logger}
}

// Synchronize validates the session's working copy and, if it is valid,
// sends exactly one bulk request. On success baseline and working copy are
// replaced by the canonical list the remote returned, which is also
// returned here. On any failure the working copy is left unchanged.
//
// A session closed while the request is in flight is not touched; the call
// then returns ErrSessionDiscarded.
func (c *Coordinator) Synchronize(ctx context.Context, s *Session) ([]models.Flashcard, error) {
	log := c.logger.With("set_id", string(s.SetID()))

	baseline, working, err := s.beginSync()
	if err != nil {
		var se *SyncError
		if errors.As(err, &se) {
			log.Debug(ctx, "flashcards failed validation", "fields", len(se.Fields))
		}
		return nil, err
	}

	changes := Diff(baseline, working)
	log.Debug(ctx, "synchronizing flashcards",
		"create", len(changes.Create), "update", len(changes.Update), "delete", len(changes.Delete))

	canonical, err := c.remote.SyncFlashcards(ctx, s.SetID(), changes)
	if err != nil {
		if !s.abort() {
			return nil, ErrSessionDiscarded
		}
		syncErr := classify(err)
		log.Warn(ctx, "flashcard sync failed", "kind", syncErr.Kind.String(), "error", err)
		return nil, syncErr
	}

	if !s.commit(canonical) {
		log.Info(ctx, "dropping sync result for discarded session")
		return nil, ErrSessionDiscarded
	}

	log.Info(ctx, "flashcards synchronized", "cards", len(canonical))
	return clone(canonical), nil
}

// remoteMessage is implemented by errors that carry a user-facing message
// from the server.
type remoteMessage interface {
	RemoteMessage() string
}

func classify(err error) *SyncError {
	if errors.Is(err, common.ErrTransport) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &SyncError{Kind: TransportFailure, Message: msgTransportGeneric, Err: err}
	}

	msg := msgRemoteGeneric
	var rm remoteMessage
	if errors.As(err, &rm) && rm.RemoteMessage() != "" {
		msg = rm.RemoteMessage()
	}
	return &SyncError{Kind: RemoteRejected, Message: msg, Err: err}
}
