package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/config"
	"github.com/dmitrijs2005/taskdesk/internal/client/credentials"
	"github.com/dmitrijs2005/taskdesk/internal/client/services"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	log     logging.Logger
	api     client.Client
	store   *credentials.Store
	session services.SessionService
	roles   *services.RoleService
	debug   *services.DebugService
	reader  *bufio.Reader
	out     io.Writer

	mu    sync.RWMutex
	board *services.TaskBoard
	mode  Mode
}

// NewApp opens the session database, builds the services and validates
// the stored session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store := credentials.NewStore(db, credentials.WithLogger(log))
	api := client.NewHTTPClient(c.ServerBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)

	a := newApp(c, store, api, log, os.Stdin, os.Stdout)
	a.db = db
	a.start(ctx)
	return a, nil
}

func newApp(c *config.Config, store *credentials.Store, api client.Client, log logging.Logger, in io.Reader, out io.Writer) *App {
	roles := services.NewRoleService(store, log)
	a := &App{
		config:  c,
		log:     log,
		api:     api,
		store:   store,
		session: services.NewSessionService(api, store, log),
		roles:   roles,
		debug:   services.NewDebugService(api, store, roles, log),
		reader:  bufio.NewReader(in),
		out:     out,
	}
	a.resetBoard()
	return a
}

// start runs the startup session check.
func (a *App) start(ctx context.Context) {
	a.session.CheckAuth(ctx)
	a.roles.Refresh(ctx)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run starts the background watchers and blocks in the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to taskdesk (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	go a.StartCredentialWatcher(ctx, a.config.WatchInterval)

	if a.isLoggedIn() {
		if u := a.session.User(); u != nil {
			printlnFn("Signed in as", u.Username)
		}
		a.tasks().LoadAll(ctx)
		a.reportErrors()
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool { return a.session.IsAuthenticated() }

func (a *App) isAdmin() bool { return a.isLoggedIn() && a.roles.IsAdmin() }

func (a *App) tasks() *services.TaskBoard {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.board
}

// resetBoard drops the cached tasks and statistics of the previous user.
func (a *App) resetBoard() {
	board := services.NewTaskBoard(
		services.NewTaskService(a.api, a.log),
		services.NewStatsService(a.api, a.log),
	)
	a.mu.Lock()
	a.board = board
	a.mu.Unlock()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// status is shown in the prompt: "(alice ADMIN online)".
func (a *App) status() string {
	var parts []string
	if u := a.session.User(); u != nil {
		parts = append(parts, u.Username)
		if role := a.roles.Role(); role != "" {
			parts = append(parts, string(role))
		}
	}
	if mode := a.Mode(); mode != "" {
		parts = append(parts, string(mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
