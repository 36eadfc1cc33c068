package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dverbis/itemkeeper/internal/client/api"
	"github.com/dverbis/itemkeeper/internal/client/config"
	"github.com/dverbis/itemkeeper/internal/client/gateway"
	"github.com/dverbis/itemkeeper/internal/client/guard"
	"github.com/dverbis/itemkeeper/internal/client/repositories/metadata"
	"github.com/dverbis/itemkeeper/internal/client/session"
	"github.com/dverbis/itemkeeper/internal/client/storage"
	"github.com/dverbis/itemkeeper/internal/logging"
)

// App ties the session store, the authenticated gateway and the REPL
// together. All remote access from the REPL goes through store or gateway;
// nothing here touches the HTTP client directly.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	store   *session.Store
	gateway *gateway.Gateway
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.LocalStorePath)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerEndpointURL, c.RequestTimeout)
	slot := metadata.NewSQLiteRepository(db)
	store := session.NewStore(apiClient, slot, logger)
	gw := gateway.New(apiClient, store, logger)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		store:   store,
		gateway: gw,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run rehydrates the session and starts the REPL. It blocks until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()

	a.store.OnChange(func(status session.Status) {
		a.logger.Info(ctx, "session status changed", "status", status.String())
	})

	if err := a.store.Initialize(ctx); err != nil {
		a.logger.Warn(ctx, "session rehydration incomplete", "err", err)
	}

	fmt.Println("Welcome to itemkeeper CLI (type 'help' for commands)")

	// A restored session lands straight on the item list.
	if guard.Decide(a.store.Status()) == guard.RenderProtected {
		fmt.Printf("Welcome back, %s!\n", a.store.User().Username)
		_ = a.List(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) sessionStatus() session.Status {
	return a.store.Status()
}

func (a *App) getStatus() string {
	if u := a.store.User(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}
