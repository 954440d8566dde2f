package editor

import (
	"strings"

	"github.com/flashly/flashly/internal/client/models"
)

// Diff computes the writes that turn baseline into working.
//
// Pending cards become creates. Persisted cards become updates when their
// trimmed text differs from the baseline, or when the baseline does not know
// them. Baseline cards absent from working become deletes. Payload text is
// always trimmed.
func Diff(baseline, working []models.Flashcard) models.ChangeSet {
	var cs models.ChangeSet

	base := make(map[models.ServerID]models.Flashcard, len(baseline))
	for _, b := range baseline {
		if id, ok := b.ID.ServerID(); ok {
			base[id] = b
		}
	}

	seen := make(map[models.ServerID]bool, len(working))
	for _, w := range working {
		q, a := strings.TrimSpace(w.Question), strings.TrimSpace(w.Answer)

		id, ok := w.ID.ServerID()
		if !ok {
			cs.Create = append(cs.Create, models.FlashcardDraft{Question: q, Answer: a})
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		b, known := base[id]
		if known && strings.TrimSpace(b.Question) == q && strings.TrimSpace(b.Answer) == a {
			continue
		}
		cs.Update = append(cs.Update, models.FlashcardUpdate{ID: id, Question: q, Answer: a})
	}

	for _, b := range baseline {
		id, ok := b.ID.ServerID()
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		cs.Delete = append(cs.Delete, id)
	}

	return cs
}
