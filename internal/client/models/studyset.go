package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/flashly/flashly/internal/timex"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must be less than 200 characters")
	ErrDescriptionTooLong  = errors.New("description must be less than 1000 characters")
	ErrNoFlashcardsToWrite = errors.New("no flashcards data provided")
)

// StudySet is a named collection of flashcards owned by a user.
// Timestamps are owned by the server and read-only here.
type StudySet struct {
	ID          ServerID   `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   timex.Time `json:"created_at"`
	UpdatedAt   timex.Time `json:"updated_at"`

	// CardCount is filled from a local cache or a detail fetch; the list
	// endpoint does not return it.
	CardCount int `json:"-"`
}

// StudySetDraft holds user input for creating or renaming a study set.
type StudySetDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Normalize trims surrounding whitespace from both fields.
func (d StudySetDraft) Normalize() StudySetDraft {
	return StudySetDraft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}
}

// Validate checks the title and description limits. Lengths are counted in
// characters, not bytes.
func (d StudySetDraft) Validate() error {
	n := d.Normalize()
	if n.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(n.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(n.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// StudySetDetail is a study set together with its flashcards.
type StudySetDetail struct {
	StudySet   StudySet
	Flashcards []Flashcard
}

// Profile is the authenticated user's account.
type Profile struct {
	ID       ServerID `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
}

// Credentials are used for login and registration.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
