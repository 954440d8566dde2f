// Package study implements the flashcard carousel used in study mode.
package study

import (
	"errors"
	"math/rand/v2"

	"github.com/flashly/flashly/internal/client/models"
)

var ErrEmptyDeck = errors.New("study set has no flashcards")

// Deck walks a fixed list of cards. Navigation wraps around at both ends and
// always shows the question side of the new card.
type Deck struct {
	cards   []models.Flashcard
	pos     int
	flipped bool
	seen    map[int]bool
}

// NewDeck copies cards into a new deck positioned on the first card.
func NewDeck(cards []models.Flashcard) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	d := &Deck{cards: append([]models.Flashcard(nil), cards...)}
	d.Reset()
	return d, nil
}

// Shuffle reorders the deck with r and returns to the first card.
func (d *Deck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
	d.Reset()
}

func (d *Deck) Reset() {
	d.pos = 0
	d.flipped = false
	d.seen = map[int]bool{0: true}
}

func (d *Deck) Next() { d.GoTo((d.pos + 1) % len(d.cards)) }

func (d *Deck) Prev() { d.GoTo((d.pos - 1 + len(d.cards)) % len(d.cards)) }

// GoTo jumps to the zero-based index i. It reports false when i is out of
// range.
func (d *Deck) GoTo(i int) bool {
	if i < 0 || i >= len(d.cards) {
		return false
	}
	d.pos = i
	d.flipped = false
	d.seen[i] = true
	return true
}

func (d *Deck) Flip() { d.flipped = !d.flipped }

func (d *Deck) Flipped() bool { return d.flipped }

func (d *Deck) Current() models.Flashcard { return d.cards[d.pos] }

// Position returns the one-based position and the deck size.
func (d *Deck) Position() (int, int) { return d.pos + 1, len(d.cards) }

// Progress is the share of cards viewed at least once, in percent.
func (d *Deck) Progress() int {
	return len(d.seen) * 100 / len(d.cards)
}
