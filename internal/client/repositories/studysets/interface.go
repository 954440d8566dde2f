// Package studysets is the local SQLite cache of study sets and their
// flashcards. Only canonical server data is written here, never unsaved
// edits.
package studysets

import (
	"context"

	"github.com/flashly/flashly/internal/client/models"
)

type Repository interface {
	// ReplaceAll makes the cached set list equal to sets. Cards of sets that
	// are still present are kept; the rest are dropped.
	ReplaceAll(ctx context.Context, sets []models.StudySet) error

	// Save upserts one set and replaces its cached flashcards.
	Save(ctx context.Context, detail models.StudySetDetail) error

	// Get returns common.ErrorNotFound when the set is not cached.
	Get(ctx context.Context, id models.ServerID) (models.StudySetDetail, error)
	List(ctx context.Context) ([]models.StudySet, error)
	Delete(ctx context.Context, id models.ServerID) error
	Clear(ctx context.Context) error
}
