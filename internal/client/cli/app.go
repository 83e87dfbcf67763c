package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/amezab/fittrack/internal/client/api"
	"github.com/amezab/fittrack/internal/client/config"
	"github.com/amezab/fittrack/internal/client/models"
	"github.com/amezab/fittrack/internal/client/session"
	"github.com/amezab/fittrack/internal/client/vault"
	"github.com/amezab/fittrack/internal/filex"
	"github.com/amezab/fittrack/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionController is the command surface the CLI needs from the
// session layer. *session.Controller is the production implementation;
// tests substitute a fake.
type sessionController interface {
	Initialize(ctx context.Context)
	Register(ctx context.Context, creds models.Credentials) (*session.RegisterResult, error)
	Verify2FA(ctx context.Context, userID int64, code string) (map[string]any, error)
	Login(ctx context.Context, creds models.Credentials) (*api.LoginResponse, error)
	CompleteSetup(ctx context.Context, profile models.OnboardingProfile) error
	CheckSetup(ctx context.Context) error
	Logout(ctx context.Context) error
	State() session.Snapshot
	Route() session.Route
}

// App ties the interactive front-end to the session controller and owns
// the process-lifetime resources (the vault database handle).
type App struct {
	config  *config.Config
	session sessionController
	log     logging.Logger
	reader  *bufio.Reader
	db      *sql.DB

	// pendingUserID remembers the account awaiting two-factor
	// verification, so "verify" does not have to ask for the id again.
	pendingUserID int64
}

// NewApp builds the full client stack from configuration: local data
// directory, device secret, vault database, API client, and session
// controller.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		log.Error(ctx, "error preparing data directory", "err", err)
		return nil, err
	}

	secret, err := vault.LoadOrCreateDeviceSecret(dataDir)
	if err != nil {
		log.Error(ctx, "error loading device secret", "err", err)
		return nil, err
	}

	db, err := vault.InitDatabase(ctx, filepath.Join(dataDir, "vault.db"))
	if err != nil {
		log.Error(ctx, "error initializing vault database", "err", err)
		return nil, err
	}

	repo := vault.NewSQLiteRepository(db)
	store := vault.NewTokenStore(repo, secret)

	holder := session.NewTokenHolder()
	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, holder)
	ctrl := session.NewController(apiClient, store, holder, log)

	return &App{
		config:  c,
		session: ctrl,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		db:      db,
	}, nil
}

// Run restores the session and enters the REPL. It blocks until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.session.Initialize(ctx)
	a.Root(ctx)
}

// Close releases the vault database handle.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "vault database close failed", "err", err)
		}
	}
}
