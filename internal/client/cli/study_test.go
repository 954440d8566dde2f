package cli

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/services"
	"github.com/flashly/flashly/internal/client/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCards() services.StudySetView {
	return services.StudySetView{Detail: models.StudySetDetail{
		StudySet: models.StudySet{ID: "3", Title: "Geography"},
		Flashcards: []models.Flashcard{
			persisted("5", "Capital of France?", "Paris"),
			persisted("6", "Capital of Spain?", "Madrid"),
			persisted("7", "Capital of Italy?", "Rome"),
		},
	}}
}

func TestStudy_NavigatesAndReportsProgress(t *testing.T) {
	sets := &fakeSets{view: threeCards()}
	a, out := newTestApp(t, lines("f", "n", "p", "p", "q"), &fakeAuth{}, sets, &fakeGen{})

	require.NoError(t, a.Study(context.Background(), []string{"3"}))
	o := out.String()
	assert.Contains(t, o, "Studying Geography")
	assert.Contains(t, o, "Paris", "flip shows the answer")
	assert.Contains(t, o, "Capital of Spain?")
	assert.Contains(t, o, "Capital of Italy?", "prev wraps to the last card")
	assert.Contains(t, o, "Viewed 100% of 3 cards.")
}

func TestStudy_JumpAndBadInput(t *testing.T) {
	sets := &fakeSets{view: threeCards()}
	a, out := newTestApp(t, lines("3", "9", "q"), &fakeAuth{}, sets, &fakeGen{})

	require.NoError(t, a.Study(context.Background(), []string{"3"}))
	assert.Contains(t, out.String(), "3 / 3")
	assert.Contains(t, out.String(), "Viewed 66% of 3 cards.")
}

func TestStudy_Shuffle(t *testing.T) {
	orig := newRand
	t.Cleanup(func() { newRand = orig })
	called := false
	newRand = func() *rand.Rand {
		called = true
		return rand.New(rand.NewPCG(1, 2))
	}

	sets := &fakeSets{view: threeCards()}
	a, _ := newTestApp(t, "q\n", &fakeAuth{}, sets, &fakeGen{})
	require.NoError(t, a.Study(context.Background(), []string{"3", "shuffle"}))
	assert.True(t, called)
}

func TestStudy_EmptySet(t *testing.T) {
	sets := &fakeSets{view: services.StudySetView{Detail: models.StudySetDetail{StudySet: models.StudySet{ID: "3"}}}}
	a, _ := newTestApp(t, "", &fakeAuth{}, sets, &fakeGen{})
	require.ErrorIs(t, a.Study(context.Background(), []string{"3"}), study.ErrEmptyDeck)
}
