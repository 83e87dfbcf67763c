// Package api binds the client to the FitTrack REST surface: five
// operations over HTTP/JSON, bearer-token injection, and normalization
// of server rejections into a typed Error.
package api

import (
	"context"

	"github.com/amezab/fittrack/internal/client/models"
)

// Client is the API surface consumed by the session controller.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Verify2FA(ctx context.Context, req Verify2FARequest) (map[string]any, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	CompleteSetup(ctx context.Context, req CompleteSetupRequest) error
	CheckSetup(ctx context.Context) (bool, error)
}

// TokenSource supplies the current bearer token for outbound requests.
// An empty string means "no credential": the Authorization header is
// omitted entirely. Passing the source in at construction replaces any
// client-wide mutable default header.
type TokenSource interface {
	Token() string
}

// RegisterRequest is the body of POST /auth/register. Password is nil
// (serialized as JSON null) for federated sign-up.
type RegisterRequest struct {
	UserName   string  `json:"userName"`
	Email      string  `json:"email"`
	Password   *string `json:"password"`
	AuthMethod string  `json:"authMethod"`
}

type RegisterResponse struct {
	ID int64 `json:"id"`
}

// Verify2FARequest is the body of POST /auth/verify-2fa.
type Verify2FARequest struct {
	UserID int64  `json:"userId"`
	Code   string `json:"code"`
}

// LoginRequest is the body of POST /auth/login. Password is nil for
// federated sign-in.
type LoginRequest struct {
	Email      string  `json:"email"`
	Password   *string `json:"password"`
	AuthMethod string  `json:"authMethod"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// CompleteSetupRequest is the body of POST /auth/setup/complete.
type CompleteSetupRequest struct {
	Gender string        `json:"gender"`
	Age    int           `json:"age"`
	Weight float64       `json:"weight"`
	Height float64       `json:"height"`
	Goals  []models.Goal `json:"goals"`
}

type checkSetupResponse struct {
	HasCompletedSetup bool `json:"hasCompletedSetup"`
}
