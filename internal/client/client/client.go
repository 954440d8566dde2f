package client

import (
	"context"
	"io"

	"github.com/flashly/flashly/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, creds models.Credentials) (models.Profile, error)
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.Profile, error)

	ListStudySets(ctx context.Context) ([]models.StudySet, error)
	CreateStudySet(ctx context.Context, draft models.StudySetDraft) (models.StudySet, error)
	GetStudySet(ctx context.Context, id models.ServerID) (models.StudySetDetail, error)
	UpdateStudySet(ctx context.Context, id models.ServerID, draft models.StudySetDraft) (models.StudySet, error)
	DeleteStudySet(ctx context.Context, id models.ServerID) error

	SyncFlashcards(ctx context.Context, setID models.ServerID, changes models.ChangeSet) ([]models.Flashcard, error)
	CreateFlashcards(ctx context.Context, setID models.ServerID, drafts []models.FlashcardDraft) ([]models.Flashcard, error)
	PreviewFlashcards(ctx context.Context, setID models.ServerID, fileName string, r io.Reader) (models.GeneratedPreview, error)
	SavePreview(ctx context.Context, setID models.ServerID, req models.SavePreviewRequest) ([]models.Flashcard, error)
}
