package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/services"
	"github.com/flashly/flashly/internal/filex"
)

// Generate uploads a document, lets the user review the generated cards and
// saves the accepted ones into the set.
func (a *App) Generate(ctx context.Context, args []string) error {
	id, err := setIDArg(args)
	if err != nil {
		return err
	}

	path := strings.Join(args[1:], " ")
	if path == "" {
		path, err = getSimpleText(a.reader,
			fmt.Sprintf("Path to a document (%s)", strings.Join(services.DocumentTypes, ", ")), a.out)
		if err != nil {
			return err
		}
	}

	a.printf("%s\n", notice("Generating flashcards, this can take a while..."))
	preview, err := a.generate.Preview(ctx, id, path)
	if err != nil {
		return describeDocumentError(err)
	}

	a.printf("%s\n", heading(fmt.Sprintf("%d flashcards generated from %s", preview.Session.Len(), preview.SourceFileName)))
	return a.editLoop(ctx, preview.Session, func(ctx context.Context) ([]models.Flashcard, error) {
		return a.generate.SavePreview(ctx, preview)
	})
}

func describeDocumentError(err error) error {
	switch {
	case errors.Is(err, filex.ErrUnsupportedType):
		return fmt.Errorf("unsupported file type, use one of: %s", strings.Join(services.DocumentTypes, ", "))
	case errors.Is(err, filex.ErrFileTooLarge):
		return fmt.Errorf("file is larger than %d MB", services.MaxDocumentSize>>20)
	case errors.Is(err, filex.ErrEmptyFile):
		return errors.New("file is empty")
	}
	return err
}
