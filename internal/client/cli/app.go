package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/guard"
	"github.com/dmitrijs2005/gophnotes/internal/client/localdb"
	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/client/tokenstore"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// MemoryDatabase as the database path keeps the session token in memory
// only; nothing is written to disk.
const MemoryDatabase = ":memory:"

type App struct {
	config  *config.Config
	api     *client.HTTPClient
	session *session.Store
	router  *navigation.Router
	logger  logging.Logger
	closeFn func() error

	reader *bufio.Reader
	out    io.Writer

	mu            sync.Mutex
	notes         *notes.Controller
	unsubscribe   func()
	pending       bool
	lastBanner    notes.Message
	authenticated bool
	loggingOut    bool
	mode          Mode
}

// NewApp opens the local database and builds the backend client and the
// session store for cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	tokens, closeFn, err := openTokenStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	api, err := client.NewHTTPClient(client.HTTPConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Debug:   cfg.Debug(),
	}, tokens, logger)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	return newApp(cfg, api, tokens, logger, closeFn, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(cfg *config.Config, api *client.HTTPClient, tokens tokenstore.Store, logger logging.Logger,
	closeFn func() error, reader *bufio.Reader, out io.Writer) *App {

	if logger == nil {
		logger = logging.Nop()
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}

	router := navigation.NewRouter(navigation.ViewDashboard)
	store := session.New(api, tokens, router, logger)
	api.AddObserver(store)

	a := &App{
		config:  cfg,
		api:     api,
		session: store,
		router:  router,
		logger:  logger,
		closeFn: closeFn,
		reader:  reader,
		out:     out,
		mode:    ModeOnline,
	}

	router.Subscribe(func(from, _ navigation.View) {
		if from == navigation.ViewDashboard {
			a.closeDashboard()
		}
	})
	store.Subscribe(a.onSessionChange)

	return a
}

func openTokenStore(ctx context.Context, path string) (tokenstore.Store, func() error, error) {
	if path == MemoryDatabase {
		return tokenstore.NewMemory(""), func() error { return nil }, nil
	}

	db, err := localdb.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	return tokenstore.NewSQLiteStore(db), db.Close, nil
}

// Run restores the session, opens the dashboard when signed in and runs
// the REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to GophNotes CLI (type 'help' for commands)")

	if err := a.session.Start(ctx); err != nil {
		a.logger.Error(ctx, "failed to restore session", "error", err)
	}
	a.openDashboard(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.RefreshInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	a.closeDashboard()
	return a.closeFn()
}

func (a *App) view() navigation.View {
	return a.router.Current()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := string(a.view())
	if name := a.session.State().UserName(); name != "" {
		s += " " + name
	}
	if a.getMode() == ModeOffline {
		s += " " + string(ModeOffline)
	}
	return fmt.Sprintf("(%s)", s)
}

// openDashboard mounts the notes dashboard when there is a session and
// sends the user to the login view otherwise.
func (a *App) openDashboard(ctx context.Context) {
	d, err := guard.Protect(ctx, a.session, a.router, func(ctx context.Context) error {
		a.router.Navigate(navigation.ViewDashboard)
		return a.mountNotes(ctx)
	})
	if err != nil {
		a.logger.Debug(ctx, "dashboard opened with errors", "error", err)
	}
	if d == guard.Redirect {
		printlnFn("Please log in (type 'login' or 'signup')")
	}
}

func (a *App) mountNotes(ctx context.Context) error {
	a.mu.Lock()
	if a.notes != nil {
		a.mu.Unlock()
		return nil
	}
	c := notes.NewController(a.api,
		notes.WithRefreshInterval(a.config.RefreshInterval),
		notes.WithLogger(a.logger),
	)
	a.notes = c
	a.lastBanner = notes.Message{}
	a.unsubscribe = c.Subscribe(a.markPending)
	a.mu.Unlock()

	return c.Mount(ctx)
}

func (a *App) closeDashboard() {
	a.mu.Lock()
	c, unsubscribe := a.notes, a.unsubscribe
	a.notes, a.unsubscribe = nil, nil
	a.pending = false
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if c != nil {
		c.Unmount()
	}
}

func (a *App) controller() *notes.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notes
}

func (a *App) markPending() {
	a.mu.Lock()
	a.pending = true
	a.mu.Unlock()
}

// drainMessages prints a banner the dashboard raised on its own, e.g. a
// failed background refresh.
func (a *App) drainMessages() {
	a.mu.Lock()
	pending, c := a.pending, a.notes
	a.pending = false
	a.mu.Unlock()

	if !pending || c == nil {
		return
	}

	msg := c.Message()
	a.mu.Lock()
	defer a.mu.Unlock()
	if msg.Empty() {
		a.lastBanner = notes.Message{}
		return
	}
	if msg != a.lastBanner {
		a.lastBanner = msg
		printlnFn(formatMessage(msg))
	}
}

// showMessage prints the current banner right after a command.
func (a *App) showMessage(c *notes.Controller) {
	msg := c.Message()
	if msg.Empty() {
		return
	}
	a.mu.Lock()
	a.lastBanner = msg
	a.mu.Unlock()
	printlnFn(formatMessage(msg))
}

func formatMessage(m notes.Message) string {
	if m.Kind == notes.KindError {
		return "[!] " + m.Text
	}
	return "[ok] " + m.Text
}

func (a *App) onSessionChange(st session.State) {
	a.mu.Lock()
	was := a.authenticated
	a.authenticated = st.Authenticated()
	quiet := a.loggingOut
	a.mu.Unlock()

	if was && !st.Authenticated() && !quiet {
		printlnFn("Session expired. Please log in again.")
	}
}
