package store

import (
	"encoding/base64"
	"fmt"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// PaginationParams contains pagination request parameters.
type PaginationParams struct {
	Limit  int    // Items per page, DefaultPageLimit when zero, capped at MaxPageLimit
	Cursor string // Opaque cursor for the next page, empty for the first page
}

// PaginatedResult contains one page of items.
type PaginatedResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"` // Empty if no more pages
	HasMore    bool   `json:"has_more"`
}

// DefaultPaginationParams returns the first page with the default limit.
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Limit: DefaultPageLimit}
}

// Validate clamps Limit into [1, MaxPageLimit].
func (p *PaginationParams) Validate() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// EncodeCursor creates an opaque cursor from the last key of a page.
// For presets that key is the slug.
func EncodeCursor(key string) string {
	if key == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(key))
}

// DecodeCursor decodes a cursor back to a key.
func DecodeCursor(cursor string) (string, error) {
	if cursor == "" {
		return "", nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	return string(decoded), nil
}
