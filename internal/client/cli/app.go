package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/trainia/trainia-cli/internal/client/client"
	"github.com/trainia/trainia-cli/internal/client/config"
	"github.com/trainia/trainia-cli/internal/client/repositories/token"
	"github.com/trainia/trainia-cli/internal/client/services"
	"github.com/trainia/trainia-cli/internal/filex"
	"github.com/trainia/trainia-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the CLI together: configuration, the session manager, and
// interactive input.
type App struct {
	config  *config.Config
	session services.SessionManager
	reader  *bufio.Reader
	log     logging.Logger
}

// NewApp builds the application graph: local database, token repository,
// HTTP client, and session manager.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	if err := filex.EnsureParentDir(cfg.DatabaseDSN); err != nil {
		log.Error(ctx, "error preparing database directory", "error", err)
		return nil, err
	}

	db, err := token.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	tokens := token.NewSQLiteRepository(db)
	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, tokens, log)
	session := services.NewSessionManager(api, tokens, log)

	return &App{config: cfg, session: session, reader: bufio.NewReader(os.Stdin), log: log}, nil
}

// Run performs the startup session check and hands control to the REPL.
// The check finishes before the first command is read, so commands never
// race the initial token verification.
func (a *App) Run(ctx context.Context) {
	a.session.Check(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) status() string {
	cur := a.session.Current()
	if cur.User != nil {
		return fmt.Sprintf("%s %s", cur.User.Email, cur.Status)
	}
	return string(cur.Status)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().LoggedIn()
}
