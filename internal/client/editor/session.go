package editor

import (
	"sync"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/google/uuid"
)

// State is the synchronization lifecycle of a session.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSyncing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSyncing:
		return "syncing"
	default:
		return "unknown"
	}
}

// Outcome records how the last synchronization attempt ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// Session is the edit buffer of one study set: the last synchronized
// baseline, the working copy the user mutates, and per-field errors.
//
// The working copy always holds at least one entry. All methods are safe for
// concurrent use; mutations are refused while a synchronization is in flight.
type Session struct {
	mu sync.Mutex

	setID    models.ServerID
	baseline []models.Flashcard
	working  []models.Flashcard
	errors   models.FieldErrors

	state     State
	outcome   Outcome
	discarded bool

	newToken func() string
}

type Option func(*Session)

// WithTokenGenerator replaces the placeholder token source.
func WithTokenGenerator(fn func() string) Option {
	return func(s *Session) { s.newToken = fn }
}

// NewSession seeds a session from the cards fetched for a study set.
func NewSession(setID models.ServerID, cards []models.Flashcard, opts ...Option) *Session {
	s := &Session{
		setID:    setID,
		baseline: clone(cards),
		working:  clone(cards),
		errors:   models.FieldErrors{},
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.working) == 0 {
		s.working = append(s.working, s.blank())
	}
	return s
}

// NewDraftSession seeds a session with unsaved cards only, as produced by
// document generation. Its baseline is empty.
func NewDraftSession(setID models.ServerID, drafts []models.FlashcardDraft, opts ...Option) *Session {
	s := NewSession(setID, nil, opts...)
	if len(drafts) == 0 {
		return s
	}
	s.working = s.working[:0]
	for _, d := range drafts {
		s.working = append(s.working, models.Flashcard{
			ID:       models.PendingID(s.newToken()),
			Question: d.Question,
			Answer:   d.Answer,
		})
	}
	return s
}

func (s *Session) blank() models.Flashcard {
	return models.Flashcard{ID: models.PendingID(s.newToken())}
}

func (s *Session) SetID() models.ServerID { return s.setID }

// SetField replaces the question or answer at pos and clears its error.
// It reports false and changes nothing if pos or field is invalid or a
// synchronization is running.
func (s *Session) SetField(pos int, field models.Field, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle || s.discarded || !field.Valid() || pos < 0 || pos >= len(s.working) {
		return false
	}
	switch field {
	case models.FieldQuestion:
		s.working[pos].Question = value
	case models.FieldAnswer:
		s.working[pos].Answer = value
	}
	delete(s.errors, models.FieldKey{Position: pos, Field: field})
	return true
}

// AddEntry appends an empty pending card and returns its position.
func (s *Session) AddEntry() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutable(); err != nil {
		return -1, err
	}
	s.working = append(s.working, s.blank())
	return len(s.working) - 1, nil
}

// RemoveEntry drops the card at pos. Errors of later cards move up one
// position. Removing the last remaining card fails with ErrMinimumEntries.
func (s *Session) RemoveEntry(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutable(); err != nil {
		return err
	}
	if pos < 0 || pos >= len(s.working) {
		return ErrPositionOutOfRange
	}
	if len(s.working) <= 1 {
		return ErrMinimumEntries
	}

	s.working = append(s.working[:pos], s.working[pos+1:]...)

	rekeyed := make(models.FieldErrors, len(s.errors))
	for k, msg := range s.errors {
		switch {
		case k.Position == pos:
			continue
		case k.Position > pos:
			k.Position--
		}
		rekeyed[k] = msg
	}
	s.errors = rekeyed
	return nil
}

// Move reorders the card at from to position to, carrying its errors along.
// Only unsaved cards can move, and only past other unsaved cards: saved cards
// keep the order the server gives them, so such a move fails with
// ErrSavedOrderFixed.
func (s *Session) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutable(); err != nil {
		return err
	}
	n := len(s.working)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrPositionOutOfRange
	}
	if from == to {
		return nil
	}
	for _, c := range s.working[min(from, to) : max(from, to)+1] {
		if !c.ID.IsPending() {
			return ErrSavedOrderFixed
		}
	}

	card := s.working[from]
	s.working = append(s.working[:from], s.working[from+1:]...)
	s.working = append(s.working[:to], append([]models.Flashcard{card}, s.working[to:]...)...)

	moved := make(models.FieldErrors, len(s.errors))
	for k, msg := range s.errors {
		k.Position = shiftedPosition(k.Position, from, to)
		moved[k] = msg
	}
	s.errors = moved
	return nil
}

// SetErrors replaces the field errors, e.g. with the result of a rejected
// save that validated the cards itself.
func (s *Session) SetErrors(fe models.FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded {
		return
	}
	s.errors = fe.Clone()
}

func shiftedPosition(p, from, to int) int {
	switch {
	case p == from:
		return to
	case from < to && p > from && p <= to:
		return p - 1
	case to < from && p >= to && p < from:
		return p + 1
	default:
		return p
	}
}

func (s *Session) mutable() error {
	if s.discarded {
		return ErrSessionDiscarded
	}
	if s.state != StateIdle {
		return ErrSyncInProgress
	}
	return nil
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.working)
}

// Entry returns a copy of the card at pos.
func (s *Session) Entry(pos int) (models.Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos < 0 || pos >= len(s.working) {
		return models.Flashcard{}, false
	}
	return s.working[pos], true
}

func (s *Session) Working() []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.working)
}

func (s *Session) Baseline() []models.Flashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.baseline)
}

func (s *Session) Errors() models.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Dirty reports whether saving would write anything.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !Diff(s.baseline, s.working).IsEmpty()
}

// Changes returns the change set a save would currently send.
func (s *Session) Changes() models.ChangeSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Diff(s.baseline, s.working)
}

// Close discards the session. Results of a synchronization that completes
// afterwards are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discarded = true
}

func (s *Session) Discarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discarded
}

// beginSync moves Idle -> Validating -> Syncing and returns snapshots of
// the baseline and working copy. Validation failures are stored on the
// session and the state returns to Idle.
func (s *Session) beginSync() (baseline, working []models.Flashcard, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutable(); err != nil {
		return nil, nil, err
	}

	s.state = StateValidating
	fieldErrors, ok := Validate(s.working)
	if !ok {
		s.errors = fieldErrors
		s.state = StateIdle
		s.outcome = OutcomeFailed
		return nil, nil, ValidationFailure(fieldErrors.Clone())
	}

	s.state = StateSyncing
	return clone(s.baseline), clone(s.working), nil
}

// commit replaces baseline and working copy with the canonical cards.
// It reports false when the session was discarded meanwhile.
func (s *Session) commit(canonical []models.Flashcard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	if s.discarded {
		return false
	}
	s.baseline = clone(canonical)
	s.working = clone(canonical)
	if len(s.working) == 0 {
		s.working = append(s.working, s.blank())
	}
	s.errors = models.FieldErrors{}
	s.outcome = OutcomeSucceeded
	return true
}

// abort returns to Idle after a failed remote call, leaving the working copy
// exactly as it was.
func (s *Session) abort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	if s.discarded {
		return false
	}
	s.outcome = OutcomeFailed
	return true
}

func clone(in []models.Flashcard) []models.Flashcard {
	out := make([]models.Flashcard, len(in))
	copy(out, in)
	return out
}
