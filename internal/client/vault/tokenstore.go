package vault

import (
	"context"
	"fmt"

	"github.com/amezab/fittrack/internal/common"
	"github.com/amezab/fittrack/internal/cryptox"
)

const (
	saltLen  = 16
	nonceLen = 12
)

// TokenStore persists the single bearer token, sealed with AES-GCM under
// a key derived from the device secret. The stored envelope is
// salt || nonce || ciphertext with fixed-length salt and nonce.
type TokenStore struct {
	repo   Repository
	secret []byte
}

func NewTokenStore(repo Repository, deviceSecret []byte) *TokenStore {
	return &TokenStore{repo: repo, secret: deviceSecret}
}

// Save seals token and writes it under the fixed vault key, replacing any
// previous value.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	salt := common.GenerateRandByteArray(saltLen)
	key := cryptox.DeriveKey(s.secret, salt)

	ciphertext, nonce, err := cryptox.Seal([]byte(token), key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	envelope := make([]byte, 0, saltLen+nonceLen+len(ciphertext))
	envelope = append(envelope, salt...)
	envelope = append(envelope, nonce...)
	envelope = append(envelope, ciphertext...)

	if err := s.repo.Set(ctx, common.TokenVaultKey, envelope); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Load returns the stored token, or common.ErrorNotFound when no token is
// persisted. A corrupted or undecryptable envelope fails with
// common.ErrInvalidToken; callers that only care about presence may
// treat it the same as absent.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	envelope, err := s.repo.Get(ctx, common.TokenVaultKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if envelope == nil {
		return "", common.ErrorNotFound
	}
	if len(envelope) < saltLen+nonceLen {
		return "", fmt.Errorf("%w: envelope too short (%d bytes)", common.ErrInvalidToken, len(envelope))
	}

	salt := envelope[:saltLen]
	nonce := envelope[saltLen : saltLen+nonceLen]
	ciphertext := envelope[saltLen+nonceLen:]

	key := cryptox.DeriveKey(s.secret, salt)
	plaintext, err := cryptox.Open(ciphertext, nonce, key)
	if err != nil {
		return "", fmt.Errorf("%w: unseal failed: %v", common.ErrInvalidToken, err)
	}
	return string(plaintext), nil
}

// Delete removes the stored token. Deleting an absent token is not an
// error.
func (s *TokenStore) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenVaultKey)
}
