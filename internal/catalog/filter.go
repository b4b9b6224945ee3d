package catalog

import (
	"sort"
	"strings"

	"github.com/vitalhub/storefront/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by FilterAndSort. Anything else falls back to SortByName.
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
)

// Criteria is the client-side filter over the in-memory product list.
// Zero values disable the corresponding predicate, except the price bounds
// which are always applied (MaxPriceCents == 0 means unbounded).
type Criteria struct {
	Search        string
	CategoryID    int64
	MinPriceCents int64
	MaxPriceCents int64
	SortKey       string
	ActiveOnly    bool
}

// FilterAndSort derives the display view of products: every returned product
// satisfies all predicates, and ordering follows the sort key with original
// relative order preserved for ties. The function is pure and deterministic;
// identical inputs always produce identical output ordering.
func FilterAndSort(products []domain.ProductView, c Criteria) []domain.ProductView {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if c.CategoryID != 0 && p.CategoryID != c.CategoryID {
			continue
		}
		if p.PriceCents < c.MinPriceCents {
			continue
		}
		if c.MaxPriceCents > 0 && p.PriceCents > c.MaxPriceCents {
			continue
		}
		if c.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}

	switch c.SortKey {
	case SortByPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents < out[j].PriceCents })
	case SortByPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PriceCents > out[j].PriceCents })
	case SortByName:
		fallthrough
	default:
		// collators are stateful, so build one per call to keep this pure
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}
