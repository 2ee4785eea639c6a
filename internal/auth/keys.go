// Package auth issues and verifies the PASETO tokens that guard preset writes.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// KeyFile is the name of the key file inside the data directory.
	KeyFile = "auth.key"

	keyLength    = 32 // PASETO v4 local keys are 256 bits
	keyHexLength = keyLength * 2
)

// LoadOrGenerateKey returns the symmetric key stored hex-encoded in
// {dataPath}/auth.key, generating and saving a new one on first use.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	keyPath := filepath.Join(dataPath, KeyFile)

	//#nosec G304 -- path is derived from the configured data directory
	raw, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
		return decodeKey(raw)
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read auth key: %w", err)
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate auth key: %w", err)
	}

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save auth key: %w", err)
	}

	return key, nil
}

// LoadKey reads an existing key without generating one.
func LoadKey(dataPath string) ([]byte, error) {
	//#nosec G304 -- path is derived from the configured data directory
	raw, err := os.ReadFile(filepath.Join(dataPath, KeyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read auth key: %w", err)
	}
	return decodeKey(raw)
}

func decodeKey(raw []byte) ([]byte, error) {
	keyHex := strings.TrimSpace(string(raw))
	if len(keyHex) != keyHexLength {
		return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", keyHexLength, len(keyHex))
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key format: not valid hex: %w", err)
	}
	return key, nil
}
