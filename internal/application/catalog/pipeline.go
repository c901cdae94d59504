package catalog

import (
	"sort"
	"strings"

	productdom "mihrab/internal/domain/product"
)

// ============================================================
// Filter / sort state
// ============================================================

// SortOption is the listing sort selection.
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNewest    SortOption = "newest"
)

// ParseSortOption maps a raw value to a SortOption, falling back to
// SortFeatured for anything unknown. A bad query param must not break a
// listing page.
func ParseSortOption(raw string) SortOption {
	switch SortOption(strings.TrimSpace(raw)) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortNewest:
		return SortNewest
	default:
		return SortFeatured
	}
}

// PriceRange is an inclusive [Min, Max] in minor currency units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FullPriceRange is the default bounds meaning "price filter inactive".
// While the range equals these bounds the price predicate is skipped
// entirely, so products with unset price fields stay visible.
func FullPriceRange() PriceRange {
	return PriceRange{Min: 0, Max: 100000}
}

// FilterState holds the selected facets for a listing page.
// Facet slices are membership sets (order-irrelevant); an empty set means
// the facet is inactive. Created fresh per page visit, never persisted.
type FilterState struct {
	Categories []string   `json:"categories,omitempty"`
	Sizes      []string   `json:"sizes,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	Sleeves    []string   `json:"sleeves,omitempty"`
	Price      PriceRange `json:"price"`
}

// NewFilterState returns the default state: no facets, full price range.
func NewFilterState() FilterState {
	return FilterState{Price: FullPriceRange()}
}

// ============================================================
// Pipeline
// ============================================================

// Apply derives the visible, ordered product list from (products, filters,
// sortBy). It is a pure function: the input slice is never mutated (sorting
// happens on a copy - the products slice is typically shared/cached across
// pages) and identical inputs yield identical output.
//
// Predicate order: category → size → color → sleeve → price → sort. Each
// filter only narrows, so the order does not affect the result set.
//
// SortFeatured preserves the input order exactly; the repositories guarantee
// a stable baseline order (createdAt asc, id tie break), which makes
// "featured" well defined.
func Apply(products []productdom.Product, f FilterState, sortBy SortOption) []productdom.Product {
	out := make([]productdom.Product, 0, len(products))

	for _, p := range products {
		if !matchesValue(f.Categories, p.Category) {
			continue
		}
		if !matchesAny(f.Sizes, p.Sizes) {
			continue
		}
		if !matchesAny(f.Colors, p.Colors) {
			continue
		}
		if !matchesValue(f.Sleeves, string(p.Sleeve)) {
			continue
		}
		if !matchesPrice(f.Price, p) {
			continue
		}
		out = append(out, p)
	}

	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAtMillis > out[j].CreatedAtMillis
		})
	default:
		// SortFeatured: keep input order
	}

	return out
}

// matchesValue: single-valued facet (category, sleeve).
// Inactive set passes everything; a product without the facet never matches
// an active set (a sleeve filter excludes sleeveless products).
func matchesValue(selected []string, have string) bool {
	if len(selected) == 0 {
		return true
	}
	have = strings.TrimSpace(have)
	if have == "" {
		return false
	}
	for _, s := range selected {
		if strings.TrimSpace(s) == have {
			return true
		}
	}
	return false
}

// matchesAny: multi-valued facet (sizes, colors). Intersection-non-empty
// test, not subset. A product with no values for the facet never matches an
// active set.
func matchesAny(selected []string, have []string) bool {
	if len(selected) == 0 {
		return true
	}
	if len(have) == 0 {
		return false
	}
	for _, s := range selected {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		for _, h := range have {
			if strings.TrimSpace(h) == s {
				return true
			}
		}
	}
	return false
}

func matchesPrice(r PriceRange, p productdom.Product) bool {
	// skip entirely at the default bounds so unpriced products stay visible
	if r == FullPriceRange() {
		return true
	}
	price := p.EffectivePrice()
	return price >= r.Min && price <= r.Max
}
