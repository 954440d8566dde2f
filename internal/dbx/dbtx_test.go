package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE flashcards (id TEXT PRIMARY KEY, question TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func countCards(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM flashcards`).Scan(&n))
	return n
}

func insertCard(ctx context.Context, tx DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO flashcards(id, question) VALUES (?, 'q')`, id)
	return err
}

func TestWithTx(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx DBTX) error
		wantErr   error
		wantCards int
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertCard(ctx, tx, "5"); err != nil {
					return err
				}
				return insertCard(ctx, tx, "6")
			},
			wantCards: 2,
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertCard(ctx, tx, "5"); err != nil {
					return err
				}
				return boom
			},
			wantErr: boom,
		},
		{
			name: "statement error rolls back earlier writes",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertCard(ctx, tx, "5"); err != nil {
					return err
				}
				return insertCard(ctx, tx, "5")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			err := WithTx(context.Background(), db, nil, tt.fn)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantCards == 0:
				require.Error(t, err)
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCards, countCards(t, db))
		})
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertCard(ctx, tx, "5"))
			panic("kaput")
		})
	})
	assert.Zero(t, countCards(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	assert.False(t, called)
}
