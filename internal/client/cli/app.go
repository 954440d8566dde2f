package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/flashly/flashly/internal/client/config"
	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/client/services"
	"github.com/flashly/flashly/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	auth     services.AuthService
	sets     services.StudySetService
	generate services.GenerateService
	logger   logging.Logger

	mu      sync.RWMutex
	profile *models.Profile
	mode    Mode

	reader *bufio.Reader
	out    io.Writer
}

type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

func NewApp(c *config.Config, auth services.AuthService, sets services.StudySetService,
	gen services.GenerateService, logger logging.Logger, opts ...Option) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	a := &App{
		config:   c,
		auth:     auth,
		sets:     sets,
		generate: gen,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.out = &lockedWriter{w: a.out}
	return a
}

// lockedWriter serializes writes from the REPL and the status watcher.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
		a.printf("%s\n", notice(fmt.Sprintf("Switched to %s mode", mode)))
	}
}

func (a *App) setProfile(p *models.Profile) {
	a.mu.Lock()
	a.profile = p
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.profile != nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.auth.Close(ctx)
	return a.Root(ctx)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode accordingly until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		if a.Mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.Mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
}
