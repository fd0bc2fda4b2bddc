package validators

import (
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/sellerdesk/sellerdesk-backend/pkg/errors"
	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

// ParseStatusesQuery reads a comma-separated status filter from the given
// query parameter. An absent parameter returns an empty slice.
func ParseStatusesQuery(r *http.Request, key string) ([]enums.OrderStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]enums.OrderStatus, 0, len(parts))
	for _, part := range parts {
		status, err := enums.ParseOrderStatus(strings.TrimSpace(part))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").
				WithDetails(map[string]any{"field": key, "value": part})
		}
		out = append(out, status)
	}
	return out, nil
}

// ParseDateQuery reads an RFC 3339 date or timestamp from the given query
// parameter, falling back to the provided default when absent.
func ParseDateQuery(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must be RFC 3339 or YYYY-MM-DD").
			WithDetails(map[string]any{"field": key, "value": raw})
	}
	return ts, nil
}
