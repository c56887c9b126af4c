package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/delegance/storefront-backend/pkg/enums"
	pkgerrors "github.com/delegance/storefront-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseSortKey reads and validates the sort query parameter; an absent value
// falls back to newest-first.
func ParseSortKey(r *http.Request, key string) (enums.SortKey, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	sort, err := enums.ParseSortKey(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid sort key").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return sort, nil
}
