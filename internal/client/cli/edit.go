package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flashly/flashly/internal/client/editor"
	"github.com/flashly/flashly/internal/client/models"
)

const editHelp = "Edit commands: list, set <n> q|a [text], add, rm <n>, mv <from> <to> (new cards only), save, cancel"

// saveFunc persists the edited session and returns the stored cards.
type saveFunc func(ctx context.Context) ([]models.Flashcard, error)

// Edit opens the flashcards of a study set for editing.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := setIDArg(args)
	if err != nil {
		return err
	}
	sess, view, err := a.sets.OpenEditor(ctx, id)
	if err != nil {
		return err
	}
	if view.Offline {
		a.printf("%s\n", notice("(offline: edits can be saved once the server is reachable)"))
	}

	a.printf("%s\n", heading("Editing "+view.Detail.StudySet.Title))
	return a.editLoop(ctx, sess, func(ctx context.Context) ([]models.Flashcard, error) {
		return a.sets.SaveFlashcards(ctx, sess)
	})
}

// addCards collects brand new cards for a freshly created set.
func (a *App) addCards(ctx context.Context, id models.ServerID) error {
	sess := editor.NewDraftSession(id, nil)
	a.printf("%s\n", heading("New flashcards"))
	return a.editLoop(ctx, sess, func(ctx context.Context) ([]models.Flashcard, error) {
		cards, err := a.sets.AddFlashcards(ctx, id, draftsOf(sess.Working()))
		if err == nil {
			sess.Close()
		}
		return cards, err
	})
}

func draftsOf(cards []models.Flashcard) []models.FlashcardDraft {
	out := make([]models.FlashcardDraft, len(cards))
	for i, c := range cards {
		out[i] = models.FlashcardDraft{Question: c.Question, Answer: c.Answer}
	}
	return out
}

// editLoop runs the edit sub-REPL until the cards are saved or the user
// leaves. Failed saves keep every edit in place.
func (a *App) editLoop(ctx context.Context, sess *editor.Session, save saveFunc) error {
	marks := models.FieldErrors{}
	a.printCards(sess, marks)
	a.printf("%s\n", dim(editHelp))

	for {
		a.printf("edit> ")
		line, err := readLine(a.reader)
		if err != nil {
			sess.Close()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.printf("%s\n", editHelp)

		case "list", "ls":
			a.printCards(sess, marks)

		case "set":
			key, err := a.setField(sess, args)
			if err != nil {
				a.printf("%s\n", errText(err.Error()))
				continue
			}
			delete(marks, key)

		case "add":
			pos, err := sess.AddEntry()
			if err != nil {
				a.printf("%s\n", errText(err.Error()))
				continue
			}
			marks = sess.Errors()
			if err := a.fillEntry(sess, pos); err != nil {
				return err
			}

		case "rm":
			if len(args) != 1 {
				a.printf("Usage: rm <n>\n")
				continue
			}
			pos, err := parsePosition(args[0], sess.Len())
			if err == nil {
				err = sess.RemoveEntry(pos)
			}
			if err != nil {
				a.printf("%s\n", errText(err.Error()))
				continue
			}
			marks = sess.Errors()

		case "mv":
			if len(args) != 2 {
				a.printf("Usage: mv <from> <to>\n")
				continue
			}
			from, err := parsePosition(args[0], sess.Len())
			if err != nil {
				a.printf("%s\n", errText(err.Error()))
				continue
			}
			to, err := parsePosition(args[1], sess.Len())
			if err == nil {
				err = sess.Move(from, to)
			}
			if err != nil {
				a.printf("%s\n", errText(err.Error()))
				continue
			}
			marks = sess.Errors()

		case "save":
			cards, err := save(ctx)
			if err == nil {
				a.printf("%s\n", success(fmt.Sprintf("Saved. The set now has %d flashcards.", len(cards))))
				return nil
			}
			var se *editor.SyncError
			if errors.As(err, &se) && se.Kind == editor.ValidationFailed {
				sess.SetErrors(se.Fields)
				marks = sess.Errors()
				a.printf("%s\n", errText(se.Message))
				a.printCards(sess, marks)
				continue
			}
			a.logger.Warn(ctx, "saving flashcards failed", "set_id", string(sess.SetID()), "error", err)
			a.printf("%s\n", errText(describeError(err)))
			a.printf("%s\n", dim("Your edits are kept. Type 'save' to retry."))

		case "cancel", "quit", "exit":
			if hasUnsaved(sess) {
				ok, err := confirmFn("Discard unsaved changes?")
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
			}
			sess.Close()
			a.printf("Changes discarded.\n")
			return nil

		default:
			a.printf("Unknown edit command: %s\n", cmd)
		}
	}
}

// setField handles "set <n> q|a [text]". Without text the value is read
// from the next input line.
func (a *App) setField(sess *editor.Session, args []string) (models.FieldKey, error) {
	if len(args) < 2 {
		return models.FieldKey{}, errors.New("usage: set <n> q|a [text]")
	}
	pos, err := parsePosition(args[0], sess.Len())
	if err != nil {
		return models.FieldKey{}, err
	}
	field, err := parseField(args[1])
	if err != nil {
		return models.FieldKey{}, err
	}

	value := strings.Join(args[2:], " ")
	if value == "" {
		current, _ := sess.Entry(pos)
		value, err = getSimpleText(a.reader, fmt.Sprintf("New %s [%s]", field, current.Get(field)), a.out)
		if err != nil {
			return models.FieldKey{}, err
		}
	}

	if !sess.SetField(pos, field, value) {
		return models.FieldKey{}, editor.ErrSyncInProgress
	}
	return models.FieldKey{Position: pos, Field: field}, nil
}

func (a *App) fillEntry(sess *editor.Session, pos int) error {
	q, err := getSimpleText(a.reader, fmt.Sprintf("Card %d question", pos+1), a.out)
	if err != nil {
		return err
	}
	ans, err := getSimpleText(a.reader, fmt.Sprintf("Card %d answer", pos+1), a.out)
	if err != nil {
		return err
	}
	sess.SetField(pos, models.FieldQuestion, q)
	sess.SetField(pos, models.FieldAnswer, ans)
	return nil
}

func parseField(s string) (models.Field, error) {
	switch strings.ToLower(s) {
	case "q", "question":
		return models.FieldQuestion, nil
	case "a", "answer":
		return models.FieldAnswer, nil
	}
	return "", fmt.Errorf("unknown field %q, use q or a", s)
}

// hasUnsaved reports whether leaving would lose anything the user typed.
func hasUnsaved(sess *editor.Session) bool {
	if !sess.Dirty() {
		return false
	}
	if len(sess.Baseline()) > 0 {
		return true
	}
	for _, c := range sess.Working() {
		if strings.TrimSpace(c.Question) != "" || strings.TrimSpace(c.Answer) != "" {
			return true
		}
	}
	return false
}

func (a *App) printCards(sess *editor.Session, marks models.FieldErrors) {
	for i, c := range sess.Working() {
		tag := ""
		if c.ID.IsPending() {
			tag = dim(" (new)")
		}
		a.printf("%3d.%s Q: %s%s\n", i+1, tag, c.Question, mark(marks, i, models.FieldQuestion))
		a.printf("     A: %s%s\n", c.Answer, mark(marks, i, models.FieldAnswer))
	}
}

func mark(marks models.FieldErrors, pos int, f models.Field) string {
	if msg, ok := marks[models.FieldKey{Position: pos, Field: f}]; ok {
		return "  " + errText("! "+msg)
	}
	return ""
}
