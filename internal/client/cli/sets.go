package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/flashly/flashly/internal/client/models"
)

const offlineNote = "(offline: showing cached data)"

// Sets lists the user's study sets, newest first.
func (a *App) Sets(ctx context.Context) error {
	res, err := a.sets.List(ctx)
	if err != nil {
		return err
	}
	if res.Offline {
		a.printf("%s\n", notice(offlineNote))
	}
	if len(res.Sets) == 0 {
		a.printf("No study sets yet. Create one with 'new'.\n")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "TITLE", "CARDS", "UPDATED")
	for _, s := range res.Sets {
		updated := ""
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Format("2006-01-02 15:04")
		}
		t.Row(string(s.ID), s.Title, strconv.Itoa(s.CardCount), updated)
	}
	a.printf("%s\n", t.Render())
	return nil
}

// Show prints a study set with all its flashcards.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := setIDArg(args)
	if err != nil {
		return err
	}
	view, err := a.sets.Get(ctx, id)
	if err != nil {
		return err
	}
	if view.Offline {
		a.printf("%s\n", notice(offlineNote))
	}

	set := view.Detail.StudySet
	a.printf("%s\n", heading(set.Title))
	if set.Description != "" {
		a.printf("%s\n", set.Description)
	}
	a.printf("%s\n", dim(fmt.Sprintf("%d flashcards", len(view.Detail.Flashcards))))
	for i, c := range view.Detail.Flashcards {
		a.printf("%3d. Q: %s\n     A: %s\n", i+1, c.Question, c.Answer)
	}
	return nil
}

// New creates a study set and optionally adds its first flashcards.
func (a *App) New(ctx context.Context) error {
	draft, err := a.promptDraft(models.StudySetDraft{})
	if err != nil {
		return err
	}
	set, err := a.sets.Create(ctx, draft)
	if err != nil {
		return err
	}
	a.printf("%s\n", success(fmt.Sprintf("Created study set %s (id %s).", set.Title, set.ID)))

	ok, err := confirmFn("Add flashcards now?")
	if err != nil || !ok {
		return err
	}
	return a.addCards(ctx, set.ID)
}

// Rename changes the title and description of a study set. Empty input
// keeps the current value.
func (a *App) Rename(ctx context.Context, args []string) error {
	id, err := setIDArg(args)
	if err != nil {
		return err
	}
	view, err := a.sets.Get(ctx, id)
	if err != nil {
		return err
	}
	current := view.Detail.StudySet

	draft, err := a.promptDraft(models.StudySetDraft{Title: current.Title, Description: current.Description})
	if err != nil {
		return err
	}
	set, err := a.sets.Update(ctx, id, draft)
	if err != nil {
		return err
	}
	a.printf("%s\n", success(fmt.Sprintf("Saved %s.", set.Title)))
	return nil
}

// Delete removes a study set after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := setIDArg(args)
	if err != nil {
		return err
	}

	ok, err := confirmFn(fmt.Sprintf("Delete study set %s and all its flashcards?", id))
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}

	if err := a.sets.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("%s\n", success("Study set deleted."))
	return nil
}

func (a *App) promptDraft(current models.StudySetDraft) (models.StudySetDraft, error) {
	titlePrompt := "Title"
	if current.Title != "" {
		titlePrompt = fmt.Sprintf("Title [%s]", current.Title)
	}
	title, err := getSimpleText(a.reader, titlePrompt, a.out)
	if err != nil {
		return models.StudySetDraft{}, err
	}
	if title == "" {
		title = current.Title
	}

	description, err := GetMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return models.StudySetDraft{}, err
	}
	if strings.TrimSpace(description) == "" {
		description = current.Description
	}

	draft := models.StudySetDraft{Title: title, Description: description}
	return draft, draft.Validate()
}
