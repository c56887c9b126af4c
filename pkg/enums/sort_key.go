package enums

import "fmt"

// SortKey orders catalog listings.
type SortKey string

const (
	SortKeyNew       SortKey = "new"
	SortKeyPriceAsc  SortKey = "price-asc"
	SortKeyPriceDesc SortKey = "price-desc"
)

var validSortKeys = []SortKey{
	SortKeyNew,
	SortKeyPriceAsc,
	SortKeyPriceDesc,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input defaults to
// newest-first, matching the storefront's unfiltered listing.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortKeyNew, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
