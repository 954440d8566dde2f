package editor

import (
	"strings"

	"github.com/flashly/flashly/internal/client/models"
)

const (
	MsgQuestionRequired = "Question is required"
	MsgAnswerRequired   = "Answer is required"
)

// Validate reports every card whose question or answer is blank after
// trimming. ok is true only if the returned map is empty.
func Validate(cards []models.Flashcard) (errs models.FieldErrors, ok bool) {
	errs = models.FieldErrors{}
	for i, c := range cards {
		if strings.TrimSpace(c.Question) == "" {
			errs[models.FieldKey{Position: i, Field: models.FieldQuestion}] = MsgQuestionRequired
		}
		if strings.TrimSpace(c.Answer) == "" {
			errs[models.FieldKey{Position: i, Field: models.FieldAnswer}] = MsgAnswerRequired
		}
	}
	return errs, len(errs) == 0
}

// ValidateDrafts applies the same checks to cards that have no identity yet.
func ValidateDrafts(drafts []models.FlashcardDraft) (models.FieldErrors, bool) {
	cards := make([]models.Flashcard, len(drafts))
	for i, d := range drafts {
		cards[i] = models.Flashcard{Question: d.Question, Answer: d.Answer}
	}
	return Validate(cards)
}

// ValidationFailure wraps field errors the way Synchronize reports them.
func ValidationFailure(fields models.FieldErrors) *SyncError {
	return &SyncError{Kind: ValidationFailed, Message: msgFixFields, Fields: fields}
}
