package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/amezab/fittrack/internal/client/api"
	"github.com/amezab/fittrack/internal/client/models"
	"github.com/amezab/fittrack/internal/client/session"
	"github.com/amezab/fittrack/internal/common"
	"github.com/amezab/fittrack/internal/logging"
	"github.com/stretchr/testify/require"
)

func stubInputs(t *testing.T, lines []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		line := lines[i]
		i++
		return line, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeSession struct {
	snapshot session.Snapshot

	// Register
	regCreds models.Credentials
	regRes   *session.RegisterResult
	regErr   error

	// Verify2FA
	verifyUserID int64
	verifyCode   string
	verifyErr    error

	// Login
	loginCreds models.Credentials
	loginResp  *api.LoginResponse
	loginErr   error

	// CompleteSetup / CheckSetup
	setupProfile *models.OnboardingProfile
	setupErr     error
	checkCalled  bool
	checkErr     error

	logoutCalled bool
}

func (f *fakeSession) Initialize(context.Context) {}
func (f *fakeSession) Register(_ context.Context, creds models.Credentials) (*session.RegisterResult, error) {
	f.regCreds = creds
	return f.regRes, f.regErr
}
func (f *fakeSession) Verify2FA(_ context.Context, userID int64, code string) (map[string]any, error) {
	f.verifyUserID, f.verifyCode = userID, code
	return map[string]any{"verified": true}, f.verifyErr
}
func (f *fakeSession) Login(_ context.Context, creds models.Credentials) (*api.LoginResponse, error) {
	f.loginCreds = creds
	return f.loginResp, f.loginErr
}
func (f *fakeSession) CompleteSetup(_ context.Context, p models.OnboardingProfile) error {
	f.setupProfile = &p
	return f.setupErr
}
func (f *fakeSession) CheckSetup(context.Context) error {
	f.checkCalled = true
	return f.checkErr
}
func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}
func (f *fakeSession) State() session.Snapshot { return f.snapshot }
func (f *fakeSession) Route() session.Route {
	return session.DecideRoute(f.snapshot.Authenticated, f.snapshot.SetupDone)
}

func newTestApp(f *fakeSession) *App {
	return &App{
		session: f,
		log:     logging.Nop(),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func TestRegister_Success(t *testing.T) {
	f := &fakeSession{regRes: &session.RegisterResult{UserID: 42}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"Alice", "alice@example.org", "password"}, []byte("secret"))
	defer restore()

	require.NoError(t, a.Register(context.Background()))

	require.Equal(t, "Alice", f.regCreds.UserName)
	require.Equal(t, "alice@example.org", f.regCreds.Email)
	require.NotNil(t, f.regCreds.Password)
	require.Equal(t, "secret", *f.regCreds.Password)
	require.Equal(t, models.AuthMethodLocal, f.regCreds.Method)
	require.Equal(t, int64(42), a.pendingUserID)
}

func TestRegister_FederatedSkipsPassword(t *testing.T) {
	f := &fakeSession{regRes: &session.RegisterResult{UserID: 7}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"Alice", "alice@example.org", "google"}, nil)
	defer restore()

	require.NoError(t, a.Register(context.Background()))

	require.Equal(t, models.AuthMethodGoogle, f.regCreds.Method)
	require.Nil(t, f.regCreds.Password)
}

func TestRegister_ServiceError(t *testing.T) {
	f := &fakeSession{regErr: &api.Error{StatusCode: 409, Message: "email taken"}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"Alice", "alice@example.org", "password"}, []byte("secret"))
	defer restore()

	err := a.Register(context.Background())
	require.Error(t, err)
	require.Zero(t, a.pendingUserID)
}

func TestVerify_UsesPendingUserID(t *testing.T) {
	f := &fakeSession{}
	a := newTestApp(f)
	a.pendingUserID = 42

	restore := stubInputs(t, []string{"123456"}, nil)
	defer restore()

	require.NoError(t, a.Verify(context.Background()))
	require.Equal(t, int64(42), f.verifyUserID)
	require.Equal(t, "123456", f.verifyCode)
	require.Zero(t, a.pendingUserID)
}

func TestVerify_PromptsForUserIDWhenUnknown(t *testing.T) {
	f := &fakeSession{}
	a := newTestApp(f)
	a.reader = bufio.NewReader(strings.NewReader("7\n"))

	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return "654321", nil
	}
	defer func() { getSimpleText = origST }()

	require.NoError(t, a.Verify(context.Background()))
	require.Equal(t, int64(7), f.verifyUserID)
	require.Equal(t, "654321", f.verifyCode)
}

func TestLogin_Success(t *testing.T) {
	f := &fakeSession{loginResp: &api.LoginResponse{AccessToken: "tok"}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice@example.org", "password"}, []byte("secret"))
	defer restore()

	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, "alice@example.org", f.loginCreds.Email)
	require.NotNil(t, f.loginCreds.Password)
	require.Equal(t, "secret", *f.loginCreds.Password)
	require.Empty(t, f.loginCreds.UserName)
}

func TestLogin_UnverifiedAccountStoresPendingID(t *testing.T) {
	f := &fakeSession{loginErr: &api.Error{
		StatusCode: 403,
		Message:    "account not verified",
		UserID:     42,
	}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice@example.org", "password"}, []byte("secret"))
	defer restore()

	err := a.Login(context.Background())
	require.Error(t, err)
	require.Equal(t, int64(42), a.pendingUserID)
}

func TestLogin_ServerUnreachable(t *testing.T) {
	f := &fakeSession{loginErr: common.ErrNoResponse}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice@example.org", "password"}, []byte("secret"))
	defer restore()

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrNoResponse)
	require.Zero(t, a.pendingUserID)
}

func TestLogout_ClearsPendingID(t *testing.T) {
	f := &fakeSession{}
	a := newTestApp(f)
	a.pendingUserID = 42

	require.NoError(t, a.Logout(context.Background()))
	require.True(t, f.logoutCalled)
	require.Zero(t, a.pendingUserID)
}

func TestReportAuthError_PlainAPIErrorKeepsPendingIDClear(t *testing.T) {
	a := newTestApp(&fakeSession{})
	a.reportAuthError(context.Background(), &api.Error{StatusCode: 400, Message: "bad request"})
	require.Zero(t, a.pendingUserID)
}
