package services

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "flashly.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---- fake client ----

// fakeClient implements client.Client for service unit tests. Nil funcs
// return zero values.
type fakeClient struct {
	client.Client

	PingErr  error
	CloseErr error

	RegisterFn func(models.Credentials) (models.Profile, error)
	LoginFn    func(models.Credentials) (string, error)
	LogoutErr  error
	ProfileFn  func() (models.Profile, error)

	ListFn   func() ([]models.StudySet, error)
	GetFn    func(models.ServerID) (models.StudySetDetail, error)
	CreateFn func(models.StudySetDraft) (models.StudySet, error)
	UpdateFn func(models.ServerID, models.StudySetDraft) (models.StudySet, error)
	DeleteFn func(models.ServerID) error

	SyncFn        func(models.ServerID, models.ChangeSet) ([]models.Flashcard, error)
	CreateCardsFn func(models.ServerID, []models.FlashcardDraft) ([]models.Flashcard, error)
	PreviewFn     func(models.ServerID, string, []byte) (models.GeneratedPreview, error)
	SavePreviewFn func(models.ServerID, models.SavePreviewRequest) ([]models.Flashcard, error)

	LogoutCalls int
	SyncCalls   int
}

func (f *fakeClient) Close() error                   { return f.CloseErr }
func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Register(ctx context.Context, c models.Credentials) (models.Profile, error) {
	if f.RegisterFn == nil {
		return models.Profile{}, nil
	}
	return f.RegisterFn(c)
}

func (f *fakeClient) Login(ctx context.Context, c models.Credentials) (string, error) {
	if f.LoginFn == nil {
		return "", nil
	}
	return f.LoginFn(c)
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(ctx context.Context) (models.Profile, error) {
	if f.ProfileFn == nil {
		return models.Profile{}, nil
	}
	return f.ProfileFn()
}

func (f *fakeClient) ListStudySets(ctx context.Context) ([]models.StudySet, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn()
}

func (f *fakeClient) GetStudySet(ctx context.Context, id models.ServerID) (models.StudySetDetail, error) {
	if f.GetFn == nil {
		return models.StudySetDetail{}, client.ErrNotFound
	}
	return f.GetFn(id)
}

func (f *fakeClient) CreateStudySet(ctx context.Context, d models.StudySetDraft) (models.StudySet, error) {
	return f.CreateFn(d)
}

func (f *fakeClient) UpdateStudySet(ctx context.Context, id models.ServerID, d models.StudySetDraft) (models.StudySet, error) {
	return f.UpdateFn(id, d)
}

func (f *fakeClient) DeleteStudySet(ctx context.Context, id models.ServerID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(id)
}

func (f *fakeClient) SyncFlashcards(ctx context.Context, id models.ServerID, cs models.ChangeSet) ([]models.Flashcard, error) {
	f.SyncCalls++
	return f.SyncFn(id, cs)
}

func (f *fakeClient) CreateFlashcards(ctx context.Context, id models.ServerID, d []models.FlashcardDraft) ([]models.Flashcard, error) {
	return f.CreateCardsFn(id, d)
}

func (f *fakeClient) PreviewFlashcards(ctx context.Context, id models.ServerID, name string, r io.Reader) (models.GeneratedPreview, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return models.GeneratedPreview{}, err
	}
	return f.PreviewFn(id, name, b)
}

func (f *fakeClient) SavePreview(ctx context.Context, id models.ServerID, req models.SavePreviewRequest) ([]models.Flashcard, error) {
	return f.SavePreviewFn(id, req)
}

func persisted(id, q, a string) models.Flashcard {
	return models.Flashcard{ID: models.PersistedID(models.ServerID(id)), Question: q, Answer: a}
}
