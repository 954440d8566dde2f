package studysets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/common"
	"github.com/flashly/flashly/internal/dbx"
	"github.com/flashly/flashly/internal/timex"
)

// tsLayout is fixed-width so that ORDER BY on the text column is chronological.
const tsLayout = "2006-01-02T15:04:05.000000Z"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func formatTS(t timex.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(tsLayout)
}

func parseTS(s string) (timex.Time, error) {
	if s == "" {
		return timex.Time{}, nil
	}
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return timex.Time{}, fmt.Errorf("bad cached timestamp %q: %w", s, err)
	}
	return timex.Time{Time: t}, nil
}

const upsertSet = `
	INSERT INTO studysets (id, title, description, created_at, updated_at, card_count, cached_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at,
		card_count = %s,
		cached_at = excluded.cached_at
`

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, sets []models.StudySet) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		keep := make([]any, 0, len(sets))
		for _, s := range sets {
			// the list endpoint carries no card count, keep the cached one
			_, err := tx.ExecContext(ctx, fmt.Sprintf(upsertSet, "studysets.card_count"),
				string(s.ID), s.Title, s.Description, formatTS(s.CreatedAt), formatTS(s.UpdatedAt), s.CardCount)
			if err != nil {
				return fmt.Errorf("failed to cache study set %s: %w", s.ID, err)
			}
			keep = append(keep, string(s.ID))
		}

		where := ""
		if len(keep) > 0 {
			where = " WHERE id NOT IN (" + placeholders(len(keep)) + ")"
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM studysets`+where, keep...); err != nil {
			return fmt.Errorf("failed to prune study sets: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE studyset_id NOT IN (SELECT id FROM studysets)`); err != nil {
			return fmt.Errorf("failed to prune flashcards: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Save(ctx context.Context, detail models.StudySetDetail) error {
	s := detail.StudySet
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(upsertSet, "excluded.card_count"),
			string(s.ID), s.Title, s.Description, formatTS(s.CreatedAt), formatTS(s.UpdatedAt), len(detail.Flashcards))
		if err != nil {
			return fmt.Errorf("failed to cache study set %s: %w", s.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE studyset_id = ?`, string(s.ID)); err != nil {
			return fmt.Errorf("failed to clear cached flashcards: %w", err)
		}

		for i, c := range detail.Flashcards {
			id, ok := c.ID.ServerID()
			if !ok {
				return fmt.Errorf("refusing to cache unsaved flashcard at position %d", i)
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO flashcards (id, studyset_id, position, question, answer) VALUES (?, ?, ?, ?, ?)`,
				string(id), string(s.ID), i, c.Question, c.Answer)
			if err != nil {
				return fmt.Errorf("failed to cache flashcard %s: %w", id, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Get(ctx context.Context, id models.ServerID) (models.StudySetDetail, error) {
	var detail models.StudySetDetail

	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_at, updated_at, card_count
		FROM studysets WHERE id = ?`, string(id))
	set, err := scanSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return detail, common.ErrorNotFound
	}
	if err != nil {
		return detail, fmt.Errorf("failed to get cached study set %s: %w", id, err)
	}
	detail.StudySet = set

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer FROM flashcards
		WHERE studyset_id = ? ORDER BY position`, string(id))
	if err != nil {
		return detail, fmt.Errorf("failed to select cached flashcards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cardID, q, a string
		if err := rows.Scan(&cardID, &q, &a); err != nil {
			return detail, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		detail.Flashcards = append(detail.Flashcards, models.Flashcard{
			ID:       models.PersistedID(models.ServerID(cardID)),
			Question: q,
			Answer:   a,
		})
	}
	if err := rows.Err(); err != nil {
		return detail, fmt.Errorf("failed to iterate flashcard rows: %w", err)
	}

	return detail, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.StudySet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, created_at, updated_at, card_count
		FROM studysets ORDER BY created_at DESC, title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached study sets: %w", err)
	}
	defer rows.Close()

	var result []models.StudySet
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan study set row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate study set rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id models.ServerID) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards WHERE studyset_id = ?`, string(id)); err != nil {
			return fmt.Errorf("failed to delete cached flashcards: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM studysets WHERE id = ?`, string(id)); err != nil {
			return fmt.Errorf("failed to delete cached study set: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM flashcards`); err != nil {
			return fmt.Errorf("failed to clear flashcards: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM studysets`); err != nil {
			return fmt.Errorf("failed to clear study sets: %w", err)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSet(row scanner) (models.StudySet, error) {
	var (
		s                models.StudySet
		id               string
		created, updated string
	)
	if err := row.Scan(&id, &s.Title, &s.Description, &created, &updated, &s.CardCount); err != nil {
		return s, err
	}
	s.ID = models.ServerID(id)

	var err error
	if s.CreatedAt, err = parseTS(created); err != nil {
		return s, err
	}
	if s.UpdatedAt, err = parseTS(updated); err != nil {
		return s, err
	}
	return s, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
