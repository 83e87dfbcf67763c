package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amezab/fittrack/internal/common"
	"github.com/amezab/fittrack/internal/filex"
)

const deviceSecretFile = "device.key"
const deviceSecretLen = 32

// LoadOrCreateDeviceSecret returns the per-device secret used to derive
// the token sealing key, generating it on first run. The secret lives
// next to the vault database with owner-only permissions.
func LoadOrCreateDeviceSecret(dataDir string) ([]byte, error) {
	path := filepath.Join(dataDir, deviceSecretFile)

	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) != deviceSecretLen {
			return nil, fmt.Errorf("device secret %s has unexpected length %d", path, len(secret))
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device secret: %w", err)
	}

	secret = common.GenerateRandByteArray(deviceSecretLen)
	if err := filex.WriteFileExclusive(path, secret); err != nil {
		// Lost a race with another first run; the other writer's secret wins.
		if existing, rerr := os.ReadFile(path); rerr == nil && len(existing) == deviceSecretLen {
			return existing, nil
		}
		return nil, err
	}
	return secret, nil
}
