package catalog

import (
	"sort"
	"strings"

	"github.com/delegance/storefront-backend/pkg/enums"
)

// Resolve runs the pure part of the listing pipeline: a single pre-pass
// annotates every product with its effective price, then the under-price
// rule, search and tag filters, and the requested sort all read that one
// annotation. Regular category filtering happens upstream at the storage
// layer by category id. The pipeline has no failure modes; no matches is a
// valid outcome.
func Resolve(products []Product, query Query, underPriceThreshold float64) []Resolved {
	resolved := make([]Resolved, 0, len(products))
	for _, product := range products {
		effective := product.ListPrice
		if product.SalePrice != nil {
			effective = *product.SalePrice
		}
		resolved = append(resolved, Resolved{Product: product, EffectivePrice: effective})
	}

	filtered := resolved[:0]
	search := strings.ToLower(strings.TrimSpace(query.Search))
	tag := strings.TrimSpace(query.Tag)
	for _, candidate := range resolved {
		if query.Category == PseudoCategoryUnderPrice && candidate.EffectivePrice > underPriceThreshold {
			continue
		}
		if search != "" && !matchesSearch(candidate.Product, search) {
			continue
		}
		if tag != "" && !hasTag(candidate.Tags, tag) {
			continue
		}
		filtered = append(filtered, candidate)
	}

	switch query.Sort {
	case enums.SortKeyPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectivePrice < filtered[j].EffectivePrice
		})
	case enums.SortKeyPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].EffectivePrice > filtered[j].EffectivePrice
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}
	return filtered
}

func matchesSearch(product Product, lowered string) bool {
	return strings.Contains(strings.ToLower(product.Title), lowered) ||
		strings.Contains(strings.ToLower(product.Slug), lowered)
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}
