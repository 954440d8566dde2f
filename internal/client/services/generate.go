package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/flashly/flashly/internal/client/client"
	"github.com/flashly/flashly/internal/client/editor"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/filex"
	"github.com/flashly/flashly/internal/logging"
)

// MaxDocumentSize is the upload limit for generation.
const MaxDocumentSize = 16 << 20

// DocumentTypes lists the accepted document extensions.
var DocumentTypes = []string{"pdf", "txt", "md", "docx", "pptx"}

// Preview is a generated, not yet saved, set of cards. Session holds only
// pending entries and may be edited before SavePreview.
type Preview struct {
	SetID          models.ServerID
	SourceFileName string
	Session        *editor.Session
}

type GenerateService interface {
	Preview(ctx context.Context, setID models.ServerID, path string) (*Preview, error)
	SavePreview(ctx context.Context, p *Preview) ([]models.Flashcard, error)
}

type generateService struct {
	client client.Client
	sets   StudySetService
	logger logging.Logger
}

func NewGenerateService(c client.Client, sets StudySetService, logger logging.Logger) GenerateService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &generateService{client: c, sets: sets, logger: logger}
}

// Preview checks the document locally and uploads it for generation.
func (g *generateService) Preview(ctx context.Context, setID models.ServerID, path string) (*Preview, error) {
	doc, err := filex.InspectDocument(path, DocumentTypes, MaxDocumentSize)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(doc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g.logger.Info(ctx, "uploading document for generation", "set_id", string(setID), "file", doc.Name, "size", doc.Size)
	res, err := g.client.PreviewFlashcards(ctx, setID, doc.Name, f)
	if err != nil {
		return nil, err
	}
	if len(res.Flashcards) == 0 {
		return nil, fmt.Errorf("no flashcards could be generated from %s", doc.Name)
	}

	return &Preview{
		SetID:          setID,
		SourceFileName: res.SourceFileName,
		Session:        editor.NewDraftSession(setID, res.Flashcards),
	}, nil
}

// SavePreview validates the edited preview and stores it on the server.
func (g *generateService) SavePreview(ctx context.Context, p *Preview) ([]models.Flashcard, error) {
	working := p.Session.Working()
	if fields, ok := editor.Validate(working); !ok {
		return nil, editor.ValidationFailure(fields)
	}

	drafts := make([]models.FlashcardDraft, len(working))
	for i, c := range working {
		drafts[i] = models.FlashcardDraft{Question: strings.TrimSpace(c.Question), Answer: strings.TrimSpace(c.Answer)}
	}

	saved, err := g.client.SavePreview(ctx, p.SetID, models.SavePreviewRequest{
		Flashcards:     drafts,
		SourceFileName: p.SourceFileName,
	})
	if err != nil {
		return nil, err
	}
	p.Session.Close()

	// refresh the cache with the full set; failures only cost freshness
	if _, err := g.sets.Get(ctx, p.SetID); err != nil {
		g.logger.Debug(ctx, "failed to refresh study set after save", "set_id", string(p.SetID), "error", err)
	}
	return saved, nil
}
