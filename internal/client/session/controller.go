package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/amezab/fittrack/internal/client/api"
	"github.com/amezab/fittrack/internal/client/models"
	"github.com/amezab/fittrack/internal/common"
	"github.com/amezab/fittrack/internal/logging"
)

// TokenStorage persists the bearer token across process restarts.
// *vault.TokenStore is the production implementation.
type TokenStorage interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// RegisterResult is what a successful registration yields: the id of the
// account now awaiting two-factor verification.
type RegisterResult struct {
	UserID int64
}

// Controller orchestrates the API surface and the token vault and owns
// the session state the front-end reads. All operations are safe for
// concurrent use; login and register additionally coalesce concurrent
// duplicate invocations onto a single flight.
type Controller struct {
	api    api.Client
	store  TokenStorage
	holder *TokenHolder
	log    logging.Logger
	now    func() time.Time

	mu            sync.Mutex
	authenticated TriState
	setupDone     TriState
	loading       int

	flights singleflight.Group
}

// NewController wires the controller to its collaborators. holder must be
// the same TokenHolder the API client was built with, so that requests
// issued after login carry the fresh token.
func NewController(apiClient api.Client, store TokenStorage, holder *TokenHolder, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		api:    apiClient,
		store:  store,
		holder: holder,
		log:    log,
		now:    time.Now,
	}
}

// State returns a snapshot of the observable session state.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Authenticated: c.authenticated,
		SetupDone:     c.setupDone,
		Loading:       c.loading > 0,
	}
}

// Route derives the navigation decision from the current state.
func (c *Controller) Route() Route {
	s := c.State()
	return DecideRoute(s.Authenticated, s.SetupDone)
}

// beginOp/endOp maintain the shared loading flag. A counter rather than a
// bool, because operations nest (Initialize triggers CheckSetup).
func (c *Controller) beginOp() {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
}

func (c *Controller) endOp() {
	c.mu.Lock()
	c.loading--
	c.mu.Unlock()
}

func (c *Controller) setSession(token string, authenticated TriState) {
	c.holder.set(token)
	c.mu.Lock()
	c.authenticated = authenticated
	c.mu.Unlock()
}

// Initialize restores the session once at startup. A readable, unexpired
// token in the vault yields an authenticated session and triggers a
// setup-status check; anything else (absent token, store failure,
// expired token) yields a signed-out session. Initialize never fails:
// every problem degrades to "not authenticated".
func (c *Controller) Initialize(ctx context.Context) {
	c.beginOp()
	defer c.endOp()

	c.log.Debug(ctx, "restoring session from vault")

	token, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			c.log.Warn(ctx, "token restore failed, treating as signed out", "err", err)
		}
		c.setSession("", False)
		return
	}

	if tokenExpired(token, c.now()) {
		c.log.Info(ctx, "stored token is expired, discarding it")
		if derr := c.store.Delete(ctx); derr != nil {
			c.log.Warn(ctx, "expired token delete failed", "err", derr)
		}
		c.setSession("", False)
		return
	}

	c.setSession(token, True)
	if err := c.CheckSetup(ctx); err != nil {
		c.log.Warn(ctx, "setup check on restore failed", "err", err)
	}
}

// Register creates a new account. It never mutates session state: the
// account still needs two-factor verification before it can log in. On
// rejection the returned error is a *api.Error carrying the server's
// message and, when registration partially succeeded, the pending user
// id and status code.
func (c *Controller) Register(ctx context.Context, creds models.Credentials) (*RegisterResult, error) {
	v, err, _ := c.flights.Do("register", func() (any, error) {
		return c.doRegister(ctx, creds)
	})
	if err != nil {
		return nil, err
	}
	return v.(*RegisterResult), nil
}

func (c *Controller) doRegister(ctx context.Context, creds models.Credentials) (*RegisterResult, error) {
	c.beginOp()
	defer c.endOp()

	resp, err := c.api.Register(ctx, api.RegisterRequest{
		UserName:   creds.UserName,
		Email:      creds.Email,
		Password:   creds.Password,
		AuthMethod: string(creds.Method),
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResult{UserID: resp.ID}, nil
}

// Verify2FA submits the second-factor code for a pending account. The
// raw payload is passed through untouched and session state is left
// alone; the caller logs in afterwards.
func (c *Controller) Verify2FA(ctx context.Context, userID int64, code string) (map[string]any, error) {
	c.beginOp()
	defer c.endOp()

	return c.api.Verify2FA(ctx, api.Verify2FARequest{UserID: userID, Code: code})
}

// Login authenticates and, on success, installs the returned access
// token as the session credential and persists it to the vault. A vault
// write failure is logged but does not fail the login: the in-memory
// session is already established, it just will not survive a restart.
// Concurrent duplicate calls coalesce onto one flight.
func (c *Controller) Login(ctx context.Context, creds models.Credentials) (*api.LoginResponse, error) {
	v, err, _ := c.flights.Do("login", func() (any, error) {
		return c.doLogin(ctx, creds)
	})
	if err != nil {
		return nil, err
	}
	return v.(*api.LoginResponse), nil
}

func (c *Controller) doLogin(ctx context.Context, creds models.Credentials) (*api.LoginResponse, error) {
	c.beginOp()
	defer c.endOp()

	resp, err := c.api.Login(ctx, api.LoginRequest{
		Email:      creds.Email,
		Password:   creds.Password,
		AuthMethod: string(creds.Method),
	})
	if err != nil {
		return nil, err
	}

	c.setSession(resp.AccessToken, True)

	if err := c.store.Save(ctx, resp.AccessToken); err != nil {
		c.log.Error(ctx, "token persist failed; session will not survive restart", "err", err)
	}

	if err := c.CheckSetup(ctx); err != nil {
		c.log.Warn(ctx, "setup check after login failed", "err", err)
	}

	return resp, nil
}

// CompleteSetup submits the onboarding profile. Without a token this is
// a guarded precondition: no network call is made and
// common.ErrNotAuthenticated is returned.
func (c *Controller) CompleteSetup(ctx context.Context, profile models.OnboardingProfile) error {
	c.beginOp()
	defer c.endOp()

	if c.holder.Token() == "" {
		c.log.Warn(ctx, "setup completion skipped: no token")
		return common.ErrNotAuthenticated
	}

	err := c.api.CompleteSetup(ctx, api.CompleteSetupRequest{
		Gender: profile.Gender,
		Age:    profile.Age,
		Weight: profile.Weight,
		Height: profile.Height,
		Goals:  profile.Goals,
	})
	if err != nil {
		c.log.Error(ctx, "setup completion failed", "err", err)
		return err
	}

	c.mu.Lock()
	c.setupDone = True
	c.mu.Unlock()
	return nil
}

// CheckSetup refreshes the setup-completion flag from the server. The
// same no-token guard applies; on failure the flag is left as it was.
func (c *Controller) CheckSetup(ctx context.Context) error {
	c.beginOp()
	defer c.endOp()

	if c.holder.Token() == "" {
		c.log.Warn(ctx, "setup check skipped: no token")
		return common.ErrNotAuthenticated
	}

	done, err := c.api.CheckSetup(ctx)
	if err != nil {
		c.log.Error(ctx, "setup check failed", "err", err)
		return err
	}

	c.mu.Lock()
	c.setupDone = triState(done)
	c.mu.Unlock()
	return nil
}

// Logout tears the session down: the persisted token is removed (a
// delete failure is logged, not surfaced), the in-memory token cleared,
// and both flags reset. Logout always succeeds locally.
func (c *Controller) Logout(ctx context.Context) error {
	c.beginOp()
	defer c.endOp()

	if err := c.store.Delete(ctx); err != nil {
		c.log.Warn(ctx, "stored token delete failed", "err", err)
	}

	c.holder.set("")
	c.mu.Lock()
	c.authenticated = False
	c.setupDone = Unknown
	c.mu.Unlock()
	return nil
}
