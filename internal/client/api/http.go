package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amezab/fittrack/internal/common"
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewHTTPClient builds a client for the API at baseURL. Every request
// runs under the given timeout and consults tokens for the bearer
// credential at send time.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// do issues one JSON request and decodes a 2xx body into out (when out is
// non-nil). Transport failures wrap common.ErrNoResponse; non-2xx replies
// become a *Error with whatever message/userId the body carried.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrNoResponse, err)
	}
	return nil
}

// mapError turns a non-2xx reply into a *Error. A body that is not the
// expected JSON shape still yields a usable error with a generic message.
func (c *HTTPClient) mapError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: "request failed"}

	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
		apiErr.UserID = payload.UserID
	}
	return apiErr
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Verify2FA(ctx context.Context, req Verify2FARequest) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, "/auth/verify-2fa", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	// A 2xx reply without a token is unusable, same as no reply at all.
	if resp.AccessToken == "" {
		return nil, common.ErrNoResponse
	}
	return &resp, nil
}

func (c *HTTPClient) CompleteSetup(ctx context.Context, req CompleteSetupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/setup/complete", req, nil)
}

func (c *HTTPClient) CheckSetup(ctx context.Context) (bool, error) {
	var resp checkSetupResponse
	if err := c.do(ctx, http.MethodGet, "/auth/check-setup", nil, &resp); err != nil {
		return false, err
	}
	return resp.HasCompletedSetup, nil
}
