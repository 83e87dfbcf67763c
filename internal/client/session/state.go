// Package session owns the client's authentication lifecycle: it holds
// the bearer token and the tri-state authenticated/setup flags, drives
// the API surface, persists the token to the vault, and derives the
// route a front-end should show.
package session

import "sync"

// TriState is a three-valued flag: Unknown before the first relevant
// call completes, then True or False. Modeling this explicitly (instead
// of a nullable bool) keeps the route derivation exhaustive.
type TriState int

const (
	Unknown TriState = iota
	False
	True
)

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// triState converts a plain bool.
func triState(b bool) TriState {
	if b {
		return True
	}
	return False
}

// Snapshot is a point-in-time copy of the controller's observable state.
type Snapshot struct {
	Authenticated TriState
	SetupDone     TriState
	Loading       bool
}

// TokenHolder is the single owner of the in-memory bearer token. It
// satisfies api.TokenSource, so the HTTP client reads the credential
// from here at send time instead of from a mutable default header.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func NewTokenHolder() *TokenHolder { return &TokenHolder{} }

// Token returns the current bearer token, or "" when unauthenticated.
func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}
