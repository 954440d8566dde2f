package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(t, "", &fakeAuth{}, &fakeSets{}, &fakeGen{})
	assert.Equal(t, "", a.getStatus())

	loggedIn(a)
	assert.Equal(t, "(ann )", a.getStatus())

	a.setMode(ModeOffline)
	assert.Equal(t, "(ann offline)", a.getStatus())
}

func TestRoot_RestoresOfflineSession(t *testing.T) {
	auth := &fakeAuth{initOK: true, offline: true, initRes: models.Profile{Username: "ann"}, pingErr: errors.New("down")}
	a, out := newTestApp(t, "", auth, &fakeSets{}, &fakeGen{})
	a.config.OnlineCheckInterval = 0

	require.NoError(t, a.Root(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, ModeOffline, a.Mode())
	assert.Contains(t, out.String(), "Signed in as ann.")
}

func TestRoot_UnauthenticatedStartsAsGuest(t *testing.T) {
	a, _ := newTestApp(t, "quit\n", &fakeAuth{}, &fakeSets{}, &fakeGen{})
	a.config.OnlineCheckInterval = 0

	require.NoError(t, a.Run(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestRoot_InitializeErrorStops(t *testing.T) {
	a, _ := newTestApp(t, "", &fakeAuth{initErr: errors.New("db locked")}, &fakeSets{}, &fakeGen{})
	require.Error(t, a.Root(context.Background()))
}

func TestRoot_PromptAndWatcherShareOutput(t *testing.T) {
	a, out := newTestApp(t, "help\nquit\n", &fakeAuth{}, &fakeSets{}, &fakeGen{})
	a.config.OnlineCheckInterval = time.Millisecond

	require.NoError(t, a.Run(context.Background()))
	o := out.String()
	assert.Regexp(t, `flashly (\(online\))?> `, o)
	assert.Contains(t, o, helpGuest)
	assert.Contains(t, o, "Bye!")
}
