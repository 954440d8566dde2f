package cli

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/flashly/flashly/internal/client/study"
)

const studyHelp = "Enter/n next, p previous, f flip, <number> jump, r restart, q quit"

// newRand is a test seam for the shuffle source.
var newRand = func() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Study shows the cards of a set one at a time. "study <id> shuffle" walks
// them in random order.
func (a *App) Study(ctx context.Context, args []string) error {
	id, err := setIDArg(args)
	if err != nil {
		return err
	}
	view, err := a.sets.Get(ctx, id)
	if err != nil {
		return err
	}
	deck, err := study.NewDeck(view.Detail.Flashcards)
	if err != nil {
		return err
	}
	if len(args) > 1 && args[1] == "shuffle" {
		deck.Shuffle(newRand())
	}
	if view.Offline {
		a.printf("%s\n", notice(offlineNote))
	}

	a.printf("%s\n", heading("Studying "+view.Detail.StudySet.Title))
	a.printf("%s\n", dim(studyHelp))
	for {
		a.printf("%s\n", study.Render(deck))
		line, err := readLine(a.reader)
		if err != nil {
			return nil
		}

		switch cmd := strings.TrimSpace(strings.ToLower(line)); cmd {
		case "", "n", "next":
			deck.Next()
		case "p", "prev":
			deck.Prev()
		case "f", "flip":
			deck.Flip()
		case "r", "restart":
			deck.Reset()
		case "q", "quit", "exit":
			_, total := deck.Position()
			a.printf("Viewed %d%% of %d cards.\n", deck.Progress(), total)
			return nil
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil || !deck.GoTo(n-1) {
				a.printf("%s\n", dim(studyHelp))
			}
		}
	}
}
