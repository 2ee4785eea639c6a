// Package id generates identifiers for presets and server instances.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// PresetPrefix prefixes every preset ID.
const PresetPrefix = "preset"

// Preset IDs avoid '_' and uppercase so they never collide with slugs in
// path parameters that accept either.
const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 16
)

// Generate creates a prefixed ID: "prefix-" followed by a 16 character
// NanoID over [0-9a-z].
//
// Returns an error if the system has insufficient entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics on failure.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewPreset returns a fresh preset ID.
func NewPreset() (string, error) {
	return Generate(PresetPrefix)
}

// NewInstance returns a random UUID identifying one server installation.
// It is persisted next to the preset database and advertised over mDNS.
func NewInstance() string {
	return uuid.NewString()
}

// ValidInstance reports whether s parses as a UUID.
func ValidInstance(s string) bool {
	return uuid.Validate(s) == nil
}
