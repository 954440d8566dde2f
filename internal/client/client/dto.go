package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/flashly/flashly/internal/client/models"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

type studySetDetailResponse struct {
	StudySet   models.StudySet          `json:"studyset"`
	Flashcards []models.RemoteFlashcard `json:"flashcards"`
}

type createFlashcardsRequest struct {
	Flashcards []models.FlashcardDraft `json:"flashcards"`
}

// flashcardsResponse accepts both {"flashcards": [...]} and a bare array.
type flashcardsResponse struct {
	Flashcards []models.RemoteFlashcard
}

func (r *flashcardsResponse) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &r.Flashcards)
	}
	var env struct {
		Flashcards *[]models.RemoteFlashcard `json:"flashcards"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Flashcards == nil {
		return fmt.Errorf("response has no flashcards list")
	}
	r.Flashcards = *env.Flashcards
	return nil
}
