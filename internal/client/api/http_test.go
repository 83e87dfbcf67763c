package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amezab/fittrack/internal/common"
)

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func noToken() TokenSource { return tokenFunc(func() string { return "" }) }

func fixedToken(token string) TokenSource {
	return tokenFunc(func() string { return token })
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second, tokens)
}

func strPtr(s string) *string { return &s }

func TestRegister_Success(t *testing.T) {
	var gotBody map[string]any
	var gotPath, gotMethod string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"id": 7})
	}, noToken())

	resp, err := c.Register(context.Background(), RegisterRequest{
		UserName:   "alice",
		Email:      "a@b.com",
		Password:   strPtr("pw"),
		AuthMethod: "local",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), resp.ID)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/auth/register", gotPath)
	require.Equal(t, "alice", gotBody["userName"])
	require.Equal(t, "a@b.com", gotBody["email"])
	require.Equal(t, "pw", gotBody["password"])
	require.Equal(t, "local", gotBody["authMethod"])
}

func TestRegister_FederatedSendsNullPassword(t *testing.T) {
	var raw map[string]json.RawMessage

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(map[string]any{"id": 1})
	}, noToken())

	_, err := c.Register(context.Background(), RegisterRequest{
		UserName:   "alice",
		Email:      "a@b.com",
		Password:   nil,
		AuthMethod: "google",
	})
	require.NoError(t, err)
	require.Equal(t, "null", string(raw["password"]))
}

func TestRegister_ErrorForwardsUserIDAndStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"message": "account pending verification", "userId": 42})
	}, noToken())

	_, err := c.Register(context.Background(), RegisterRequest{Email: "a@b.com", AuthMethod: "local"})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "account pending verification", apiErr.Message)
	require.Equal(t, int64(42), apiErr.UserID)
}

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.Empty(t, r.Header.Get("Authorization"), "no token yet")
		json.NewEncoder(w).Encode(map[string]any{"accessToken": "T1"})
	}, noToken())

	resp, err := c.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: strPtr("x"), AuthMethod: "local"})
	require.NoError(t, err)
	require.Equal(t, "T1", resp.AccessToken)
}

func TestLogin_EmptyBodyIsNoResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no body", body: ""},
		{name: "empty object", body: "{}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, noToken())

			_, err := c.Login(context.Background(), LoginRequest{Email: "a@b.com", AuthMethod: "local"})
			require.ErrorIs(t, err, common.ErrNoResponse)
		})
	}
}

func TestLogin_TransportFailureIsNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	c := NewHTTPClient(srv.URL, time.Second, noToken())
	_, err := c.Login(context.Background(), LoginRequest{Email: "a@b.com", AuthMethod: "local"})
	require.ErrorIs(t, err, common.ErrNoResponse)
}

func TestCheckSetup_AttachesBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/auth/check-setup", r.URL.Path)
		require.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"hasCompletedSetup": true})
	}, fixedToken("T1"))

	done, err := c.CheckSetup(context.Background())
	require.NoError(t, err)
	require.True(t, done)
}

func TestCompleteSetup_PostsProfile(t *testing.T) {
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/setup/complete", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}, fixedToken("T1"))

	err := c.CompleteSetup(context.Background(), CompleteSetupRequest{
		Gender: "male", Age: 30, Weight: 80, Height: 180,
	})
	require.NoError(t, err)
	require.Equal(t, "male", gotBody["gender"])
	require.Equal(t, float64(30), gotBody["age"])
}

func TestMapError_NonJSONBodyGetsGenericMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}, noToken())

	_, err := c.CheckSetup(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "request failed", apiErr.Message)
}

func TestVerify2FA_ReturnsRawPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify-2fa", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, float64(42), body["userId"])
		require.Equal(t, "123456", body["code"])
		json.NewEncoder(w).Encode(map[string]any{"verified": true})
	}, noToken())

	payload, err := c.Verify2FA(context.Background(), Verify2FARequest{UserID: 42, Code: "123456"})
	require.NoError(t, err)
	require.Equal(t, true, payload["verified"])
}

func TestVerify2FA_ErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "invalid code"})
	}, noToken())

	_, err := c.Verify2FA(context.Background(), Verify2FARequest{UserID: 42, Code: "000000"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid code", apiErr.Message)
}
