// Package models defines client-side data models used by the flashly CLI.
package models

import (
	"encoding/json"

	"github.com/flashly/flashly/internal/timex"
)

// Flashcard is a question/answer pair belonging to a study set.
type Flashcard struct {
	ID       Identity
	Question string
	Answer   string
}

// Field names an editable part of a flashcard.
type Field string

const (
	FieldQuestion Field = "question"
	FieldAnswer   Field = "answer"
)

func (f Field) Valid() bool {
	return f == FieldQuestion || f == FieldAnswer
}

// Get returns the value of field f.
func (c Flashcard) Get(f Field) string {
	if f == FieldAnswer {
		return c.Answer
	}
	return c.Question
}

// RemoteFlashcard is the wire form of a flashcard returned by the API.
type RemoteFlashcard struct {
	ID        ServerID   `json:"id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	CreatedAt timex.Time `json:"created_at"`
	UpdatedAt timex.Time `json:"updated_at"`
}

// Flashcard converts the wire form into a persisted flashcard.
func (r RemoteFlashcard) Flashcard() Flashcard {
	return Flashcard{ID: PersistedID(r.ID), Question: r.Question, Answer: r.Answer}
}

// FromRemote converts a canonical list returned by the API.
func FromRemote(in []RemoteFlashcard) []Flashcard {
	out := make([]Flashcard, 0, len(in))
	for _, r := range in {
		out = append(out, r.Flashcard())
	}
	return out
}

// FlashcardDraft is a card without identity, sent as a create payload.
type FlashcardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardUpdate targets an existing card by its server id.
type FlashcardUpdate struct {
	ID       ServerID `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
}

// ChangeSet is the minimal set of writes that brings the remote collection
// in line with the working copy.
type ChangeSet struct {
	Create []FlashcardDraft
	Update []FlashcardUpdate
	Delete []ServerID
}

func (c ChangeSet) IsEmpty() bool {
	return len(c.Create) == 0 && len(c.Update) == 0 && len(c.Delete) == 0
}

// MarshalJSON renders the change set as the bulk update body
// {"flashcards": [...updates, ...creates], "delete_ids": [...]}.
// Updates carry an id, creates do not.
func (c ChangeSet) MarshalJSON() ([]byte, error) {
	cards := make([]any, 0, len(c.Update)+len(c.Create))
	for _, u := range c.Update {
		cards = append(cards, u)
	}
	for _, d := range c.Create {
		cards = append(cards, d)
	}
	deleteIDs := c.Delete
	if deleteIDs == nil {
		deleteIDs = []ServerID{}
	}
	return json.Marshal(struct {
		Flashcards []any      `json:"flashcards"`
		DeleteIDs  []ServerID `json:"delete_ids"`
	}{Flashcards: cards, DeleteIDs: deleteIDs})
}
