// Package vault is the client's secure credential store: a small sqlite
// key/value table holding sealed secrets, plus a TokenStore that
// encrypts the single access token at rest with a key derived from a
// per-device secret.
package vault

import "context"

// Repository is the raw key/value layer beneath the TokenStore.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
