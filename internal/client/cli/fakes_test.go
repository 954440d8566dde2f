package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/flashly/flashly/internal/client/config"
	"github.com/flashly/flashly/internal/client/editor"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/services"
)

// ---- helpers ----

func stubConfirm(t *testing.T, answers ...bool) *[]string {
	t.Helper()
	var asked []string
	orig := confirmFn
	confirmFn = func(title string) (bool, error) {
		asked = append(asked, title)
		if len(answers) == 0 {
			t.Fatalf("unexpected confirmation %q", title)
		}
		ok := answers[0]
		answers = answers[1:]
		return ok, nil
	}
	t.Cleanup(func() { confirmFn = orig })
	return &asked
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func lines(ls ...string) string { return strings.Join(ls, "\n") + "\n" }

func newTestApp(t *testing.T, input string, auth services.AuthService, sets services.StudySetService,
	gen services.GenerateService) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return NewApp(cfg, auth, sets, gen, nil, WithIO(strings.NewReader(input), out)), out
}

func loggedIn(a *App) *App {
	a.setProfile(&models.Profile{ID: "u1", Username: "ann"})
	return a
}

func persisted(id, q, a string) models.Flashcard {
	return models.Flashcard{ID: models.PersistedID(models.ServerID(id)), Question: q, Answer: a}
}

func geography() models.StudySetDetail {
	return models.StudySetDetail{
		StudySet:   models.StudySet{ID: "3", Title: "Geography"},
		Flashcards: []models.Flashcard{persisted("5", "Capital of France?", "Paris")},
	}
}

// ---- fake auth ----

type fakeAuth struct {
	initRes models.Profile
	initOK  bool
	offline bool
	initErr error

	regArgs []string
	regErr  error

	loginEmail string
	loginPass  string
	loginErr   error

	logoutCalls int
	logoutErr   error

	pingErr error
}

func (f *fakeAuth) Initialize(context.Context) (services.AuthResult, error) {
	if f.initErr != nil || !f.initOK {
		return services.AuthResult{}, f.initErr
	}
	return services.AuthResult{Status: services.Authenticated, Profile: f.initRes, Offline: f.offline}, nil
}

func (f *fakeAuth) Register(_ context.Context, username, email string, password []byte) (models.Profile, error) {
	f.regArgs = []string{username, email, string(password)}
	return models.Profile{Username: username, Email: email}, f.regErr
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (models.Profile, error) {
	f.loginEmail, f.loginPass = email, string(password)
	if f.loginErr != nil {
		return models.Profile{}, f.loginErr
	}
	return models.Profile{ID: "u1", Username: "ann", Email: email}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { return nil }

// ---- fake study sets ----

// remoteFunc adapts a function to editor.Remote.
type remoteFunc func(models.ServerID, models.ChangeSet) ([]models.Flashcard, error)

func (f remoteFunc) SyncFlashcards(_ context.Context, id models.ServerID, cs models.ChangeSet) ([]models.Flashcard, error) {
	return f(id, cs)
}

type fakeSets struct {
	services.StudySetService

	list    services.StudySetList
	listErr error
	view    services.StudySetView
	getErr  error

	created  []models.StudySetDraft
	updated  []models.StudySetDraft
	deleted  []models.ServerID
	addDraft [][]models.FlashcardDraft

	// sync drives SaveFlashcards through a real coordinator.
	sync remoteFunc
}

func (f *fakeSets) List(context.Context) (services.StudySetList, error) { return f.list, f.listErr }

func (f *fakeSets) Get(context.Context, models.ServerID) (services.StudySetView, error) {
	return f.view, f.getErr
}

func (f *fakeSets) Create(_ context.Context, d models.StudySetDraft) (models.StudySet, error) {
	f.created = append(f.created, d.Normalize())
	return models.StudySet{ID: "7", Title: d.Normalize().Title}, nil
}

func (f *fakeSets) Update(_ context.Context, id models.ServerID, d models.StudySetDraft) (models.StudySet, error) {
	f.updated = append(f.updated, d.Normalize())
	return models.StudySet{ID: id, Title: d.Normalize().Title}, nil
}

func (f *fakeSets) Delete(_ context.Context, id models.ServerID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSets) OpenEditor(_ context.Context, id models.ServerID) (*editor.Session, services.StudySetView, error) {
	if f.getErr != nil {
		return nil, services.StudySetView{}, f.getErr
	}
	return editor.NewSession(id, f.view.Detail.Flashcards), f.view, nil
}

func (f *fakeSets) SaveFlashcards(ctx context.Context, s *editor.Session) ([]models.Flashcard, error) {
	return editor.NewCoordinator(f.sync, nil).Synchronize(ctx, s)
}

func (f *fakeSets) AddFlashcards(_ context.Context, id models.ServerID, drafts []models.FlashcardDraft) ([]models.Flashcard, error) {
	if fields, ok := editor.ValidateDrafts(drafts); !ok {
		return nil, editor.ValidationFailure(fields)
	}
	f.addDraft = append(f.addDraft, drafts)
	out := make([]models.Flashcard, len(drafts))
	for i, d := range drafts {
		out[i] = models.Flashcard{ID: models.PersistedID("9"), Question: d.Question, Answer: d.Answer}
	}
	return out, nil
}

// ---- fake generation ----

type fakeGen struct {
	path    string
	preview *services.Preview
	err     error
	saved   *services.Preview
	saveErr error
}

func (f *fakeGen) Preview(_ context.Context, setID models.ServerID, path string) (*services.Preview, error) {
	f.path = path
	return f.preview, f.err
}

func (f *fakeGen) SavePreview(_ context.Context, p *services.Preview) ([]models.Flashcard, error) {
	if fields, ok := editor.Validate(p.Session.Working()); !ok {
		return nil, editor.ValidationFailure(fields)
	}
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = p
	p.Session.Close()
	return p.Session.Working(), nil
}
