package editor

import (
	"testing"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	base := []models.Flashcard{
		persisted("1", "Capital of France?", "Paris"),
		persisted("2", "Largest ocean?", "Pacific"),
		persisted("3", "H2O?", "Water"),
	}

	tests := []struct {
		name    string
		working []models.Flashcard
		want    models.ChangeSet
	}{
		{
			name:    "identical is empty",
			working: base,
			want:    models.ChangeSet{},
		},
		{
			name: "whitespace only is not an update",
			working: []models.Flashcard{
				persisted("1", "  Capital of France?", "Paris\n"),
				base[1], base[2],
			},
			want: models.ChangeSet{},
		},
		{
			name: "edit becomes update with trimmed text",
			working: []models.Flashcard{
				persisted("1", "Capital of France?", " Paris, France "),
				base[1], base[2],
			},
			want: models.ChangeSet{Update: []models.FlashcardUpdate{{ID: "1", Question: "Capital of France?", Answer: "Paris, France"}}},
		},
		{
			name:    "removed become deletes",
			working: []models.Flashcard{base[1]},
			want:    models.ChangeSet{Delete: []models.ServerID{"1", "3"}},
		},
		{
			name: "pending becomes create",
			working: append(append([]models.Flashcard{}, base...),
				models.Flashcard{ID: models.PendingID("1"), Question: " 2+2? ", Answer: "4"}),
			want: models.ChangeSet{Create: []models.FlashcardDraft{{Question: "2+2?", Answer: "4"}}},
		},
		{
			name:    "persisted id unknown to baseline is an update",
			working: append(append([]models.Flashcard{}, base...), persisted("42", "q", "a")),
			want:    models.ChangeSet{Update: []models.FlashcardUpdate{{ID: "42", Question: "q", Answer: "a"}}},
		},
		{
			name:    "reorder alone is empty",
			working: []models.Flashcard{base[2], base[0], base[1]},
			want:    models.ChangeSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(base, tt.working)
			if d := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); d != "" {
				t.Fatalf("Diff mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestDiff_PendingTokenMatchingServerIDIsStillCreate(t *testing.T) {
	base := []models.Flashcard{persisted("5", "q", "a")}
	working := []models.Flashcard{
		base[0],
		{ID: models.PendingID("5"), Question: "new", Answer: "card"},
	}

	cs := Diff(base, working)
	assert.Empty(t, cs.Update)
	assert.Empty(t, cs.Delete)
	assert.Equal(t, []models.FlashcardDraft{{Question: "new", Answer: "card"}}, cs.Create)
}

// Every working card is written at most once and every write refers to a
// card that exists on one side.
func TestDiff_Accounting(t *testing.T) {
	base := []models.Flashcard{
		persisted("1", "a", "a"),
		persisted("2", "b", "b"),
		persisted("3", "c", "c"),
		persisted("4", "d", "d"),
	}
	working := []models.Flashcard{
		persisted("2", "b", "b"),
		persisted("4", "d", "D"),
		{ID: models.PendingID("x"), Question: "e", Answer: "e"},
		{ID: models.PendingID("y"), Question: "f", Answer: "f"},
	}

	cs := Diff(base, working)

	pending := 0
	persistedIDs := map[models.ServerID]bool{}
	for _, w := range working {
		if id, ok := w.ID.ServerID(); ok {
			persistedIDs[id] = true
		} else {
			pending++
		}
	}
	assert.Len(t, cs.Create, pending)
	for _, u := range cs.Update {
		assert.True(t, persistedIDs[u.ID])
	}
	for _, d := range cs.Delete {
		assert.False(t, persistedIDs[d])
	}
	assert.ElementsMatch(t, []models.ServerID{"1", "3"}, cs.Delete)
	assert.Len(t, cs.Update, 1)
}

func TestValidate(t *testing.T) {
	errs, ok := Validate([]models.Flashcard{
		persisted("1", "q", "a"),
		{ID: models.PendingID("t"), Question: "   ", Answer: "a"},
		{ID: models.PendingID("u"), Question: "", Answer: "\t"},
	})

	assert.False(t, ok)
	assert.Equal(t, models.FieldErrors{
		{Position: 1, Field: models.FieldQuestion}: MsgQuestionRequired,
		{Position: 2, Field: models.FieldQuestion}: MsgQuestionRequired,
		{Position: 2, Field: models.FieldAnswer}:   MsgAnswerRequired,
	}, errs)

	errs, ok = Validate([]models.Flashcard{persisted("1", "q", "a")})
	assert.True(t, ok)
	assert.Empty(t, errs)
}
