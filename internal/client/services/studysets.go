package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/editor"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/repositories/studysets"
	"github.com/flashly/flashly/internal/common"
	"github.com/flashly/flashly/internal/logging"
)

// ErrNotCached is returned when the server is unreachable and the requested
// study set has never been fetched.
var ErrNotCached = errors.New("study set is not available offline")

// StudySetList is a list result; Offline marks data served from the cache.
type StudySetList struct {
	Sets    []models.StudySet
	Offline bool
}

type StudySetView struct {
	Detail  models.StudySetDetail
	Offline bool
}

// StudySetService manages study sets and their flashcards.
//
// Reads go to the server and fall back to the local cache when it cannot be
// reached. Writes always need the server.
type StudySetService interface {
	List(ctx context.Context) (StudySetList, error)
	Get(ctx context.Context, id models.ServerID) (StudySetView, error)
	Create(ctx context.Context, draft models.StudySetDraft) (models.StudySet, error)
	Update(ctx context.Context, id models.ServerID, draft models.StudySetDraft) (models.StudySet, error)
	Delete(ctx context.Context, id models.ServerID) error

	OpenEditor(ctx context.Context, id models.ServerID) (*editor.Session, StudySetView, error)
	SaveFlashcards(ctx context.Context, s *editor.Session) ([]models.Flashcard, error)
	AddFlashcards(ctx context.Context, id models.ServerID, drafts []models.FlashcardDraft) ([]models.Flashcard, error)
}

type studySetService struct {
	client client.Client
	cache  studysets.Repository
	coord  *editor.Coordinator
	logger logging.Logger
}

func NewStudySetService(c client.Client, cache studysets.Repository, logger logging.Logger) StudySetService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &studySetService{
		client: c,
		cache:  cache,
		coord:  editor.NewCoordinator(c, logger),
		logger: logger,
	}
}

func (s *studySetService) List(ctx context.Context) (StudySetList, error) {
	sets, err := s.client.ListStudySets(ctx)
	if err == nil {
		if cerr := s.cache.ReplaceAll(ctx, sets); cerr != nil {
			s.logger.Warn(ctx, "failed to refresh study set cache", "error", cerr)
		}
		// the list endpoint carries no counts, take them from the cache
		if cached, cerr := s.cache.List(ctx); cerr == nil {
			counts := make(map[models.ServerID]int, len(cached))
			for _, c := range cached {
				counts[c.ID] = c.CardCount
			}
			for i := range sets {
				sets[i].CardCount = counts[sets[i].ID]
			}
		}
		sortNewestFirst(sets)
		return StudySetList{Sets: sets}, nil
	}
	if !errors.Is(err, client.ErrTransport) {
		return StudySetList{}, err
	}

	cached, cerr := s.cache.List(ctx)
	if cerr != nil {
		return StudySetList{}, fmt.Errorf("%w (cache: %v)", err, cerr)
	}
	s.logger.Info(ctx, "serving study sets from cache", "count", len(cached))
	return StudySetList{Sets: cached, Offline: true}, nil
}

// sortNewestFirst matches the order the cache returns sets in.
func sortNewestFirst(sets []models.StudySet) {
	slices.SortStableFunc(sets, func(a, b models.StudySet) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
}

func (s *studySetService) Get(ctx context.Context, id models.ServerID) (StudySetView, error) {
	detail, err := s.client.GetStudySet(ctx, id)
	if err == nil {
		if cerr := s.cache.Save(ctx, detail); cerr != nil {
			s.logger.Warn(ctx, "failed to cache study set", "set_id", string(id), "error", cerr)
		}
		return StudySetView{Detail: detail}, nil
	}
	if errors.Is(err, client.ErrNotFound) {
		_ = s.cache.Delete(ctx, id)
		return StudySetView{}, err
	}
	if !errors.Is(err, client.ErrTransport) {
		return StudySetView{}, err
	}

	cached, cerr := s.cache.Get(ctx, id)
	if errors.Is(cerr, common.ErrorNotFound) {
		return StudySetView{}, fmt.Errorf("%w: %w", ErrNotCached, err)
	}
	if cerr != nil {
		return StudySetView{}, cerr
	}
	return StudySetView{Detail: cached, Offline: true}, nil
}

func (s *studySetService) Create(ctx context.Context, draft models.StudySetDraft) (models.StudySet, error) {
	if err := draft.Validate(); err != nil {
		return models.StudySet{}, err
	}
	set, err := s.client.CreateStudySet(ctx, draft.Normalize())
	if err != nil {
		return models.StudySet{}, err
	}
	if cerr := s.cache.Save(ctx, models.StudySetDetail{StudySet: set}); cerr != nil {
		s.logger.Warn(ctx, "failed to cache study set", "set_id", string(set.ID), "error", cerr)
	}
	s.logger.Info(ctx, "study set created", "set_id", string(set.ID))
	return set, nil
}

func (s *studySetService) Update(ctx context.Context, id models.ServerID, draft models.StudySetDraft) (models.StudySet, error) {
	if err := draft.Validate(); err != nil {
		return models.StudySet{}, err
	}
	set, err := s.client.UpdateStudySet(ctx, id, draft.Normalize())
	if err != nil {
		return models.StudySet{}, err
	}
	if cached, cerr := s.cache.Get(ctx, id); cerr == nil {
		cached.StudySet = set
		if cerr := s.cache.Save(ctx, cached); cerr != nil {
			s.logger.Warn(ctx, "failed to cache study set", "set_id", string(id), "error", cerr)
		}
	}
	return set, nil
}

func (s *studySetService) Delete(ctx context.Context, id models.ServerID) error {
	if err := s.client.DeleteStudySet(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warn(ctx, "failed to drop cached study set", "set_id", string(id), "error", err)
	}
	s.logger.Info(ctx, "study set deleted", "set_id", string(id))
	return nil
}

// OpenEditor fetches the set and seeds an edit session from its cards.
func (s *studySetService) OpenEditor(ctx context.Context, id models.ServerID) (*editor.Session, StudySetView, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, StudySetView{}, err
	}
	return editor.NewSession(id, view.Detail.Flashcards), view, nil
}

// SaveFlashcards synchronizes the session and refreshes the cached cards.
func (s *studySetService) SaveFlashcards(ctx context.Context, sess *editor.Session) ([]models.Flashcard, error) {
	canonical, err := s.coord.Synchronize(ctx, sess)
	if err != nil {
		return nil, err
	}
	s.cacheCards(ctx, sess.SetID(), canonical)
	return canonical, nil
}

// AddFlashcards validates and creates new cards in one request.
func (s *studySetService) AddFlashcards(ctx context.Context, id models.ServerID, drafts []models.FlashcardDraft) ([]models.Flashcard, error) {
	if len(drafts) == 0 {
		return nil, models.ErrNoFlashcardsToWrite
	}
	if fields, ok := editor.ValidateDrafts(drafts); !ok {
		return nil, editor.ValidationFailure(fields)
	}

	trimmed := make([]models.FlashcardDraft, len(drafts))
	for i, d := range drafts {
		trimmed[i] = models.FlashcardDraft{Question: strings.TrimSpace(d.Question), Answer: strings.TrimSpace(d.Answer)}
	}

	created, err := s.client.CreateFlashcards(ctx, id, trimmed)
	if err != nil {
		return nil, err
	}

	if cached, cerr := s.cache.Get(ctx, id); cerr == nil {
		cached.Flashcards = append(cached.Flashcards, created...)
		s.cacheCards(ctx, id, cached.Flashcards)
	}
	return created, nil
}

func (s *studySetService) cacheCards(ctx context.Context, id models.ServerID, cards []models.Flashcard) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Debug(ctx, "study set not cached, skipping card refresh", "set_id", string(id))
		return
	}
	cached.Flashcards = cards
	if err := s.cache.Save(ctx, cached); err != nil {
		s.logger.Warn(ctx, "failed to cache flashcards", "set_id", string(id), "error", err)
	}
}
