package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many orders any page can request.
	MaxLimit = 100
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor from the last order id on a page.
func EncodeCursor(id uuid.UUID) string {
	return base64.StdEncoding.EncodeToString([]byte(id.String()))
}

// ParseCursor decodes a cursor back into the order id it points at. An
// empty cursor means the first page.
func ParseCursor(value string) (uuid.UUID, bool, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, false, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("decode cursor: %w", err)
	}
	id, err := uuid.Parse(string(decoded))
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("invalid cursor id: %w", err)
	}
	return id, true, nil
}
