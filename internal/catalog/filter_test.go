package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalhub/storefront/internal/domain"
)

func pv(id int64, name, desc string, categoryID, price int64, active bool) domain.ProductView {
	return domain.ProductView{
		Product: domain.Product{
			ID:          id,
			Name:        name,
			Description: desc,
			CategoryID:  categoryID,
			PriceCents:  price,
			Active:      active,
		},
	}
}

func fixtureProducts() []domain.ProductView {
	return []domain.ProductView{
		pv(1, "iPhone 15 Pro", "Latest Apple flagship", 1, 4500000, true),
		pv(2, "AirPods Pro", "Noise cancelling earbuds", 1, 850000, true),
		pv(3, "Galaxy S24", "Samsung flagship with pro-grade camera", 1, 3800000, true),
		pv(4, "USB-C Cable", "Fast charging cable", 2, 25000, true),
		pv(5, "Wireless Charger", "15W charging pad", 2, 120000, true),
		pv(6, "MacBook Air", "M3 laptop", 3, 5200000, true),
		pv(7, "Dell XPS 13", "Professional ultrabook", 3, 4800000, true),
		pv(8, "Phone Case", "Silicone case", 2, 35000, true),
		pv(9, "Screen Guard", "Tempered glass", 2, 15000, false),
		pv(10, "Power Bank", "20000mAh portable charger", 2, 180000, true),
		pv(11, "Smart Watch Pro", "Fitness tracking", 1, 950000, true),
		pv(12, "Bluetooth Speaker", "Water-resistant speaker", 2, 280000, false),
	}
}

func names(rows []domain.ProductView) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestFilterSearchMatchesNameAndDescription(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{Search: "pro", SortKey: SortByPriceLow})
	// "pro" matches names (iPhone 15 Pro, AirPods Pro, Smart Watch Pro) and
	// descriptions (pro-grade camera, Professional ultrabook), case-insensitive
	assert.Equal(t, []string{
		"AirPods Pro",
		"Smart Watch Pro",
		"Galaxy S24",
		"iPhone 15 Pro",
		"Dell XPS 13",
	}, names(rows))
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	lower := FilterAndSort(fixtureProducts(), Criteria{Search: "iphone"})
	upper := FilterAndSort(fixtureProducts(), Criteria{Search: "IPHONE"})
	require.Len(t, lower, 1)
	assert.Equal(t, names(lower), names(upper))
}

func TestFilterByCategory(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{CategoryID: 3})
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.EqualValues(t, 3, r.CategoryID)
	}
}

func TestFilterPriceBoundsInclusive(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{
		MinPriceCents: 120000,
		MaxPriceCents: 280000,
		SortKey:       SortByPriceLow,
	})
	// Both boundary prices must be included
	assert.Equal(t, []string{"Wireless Charger", "Power Bank", "Bluetooth Speaker"}, names(rows))
}

func TestFilterMaxPriceZeroMeansUnbounded(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{MinPriceCents: 4000000})
	assert.Equal(t, []string{"Dell XPS 13", "iPhone 15 Pro", "MacBook Air"}, names(rows))
}

func TestFilterActiveOnly(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{ActiveOnly: true})
	assert.Len(t, rows, 10)
	for _, r := range rows {
		assert.True(t, r.Active, r.Name)
	}
}

func TestSortDefaultIsNameOrder(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{CategoryID: 1})
	assert.Equal(t, []string{
		"AirPods Pro",
		"Galaxy S24",
		"iPhone 15 Pro",
		"Smart Watch Pro",
	}, names(rows))

	// Unknown sort keys fall back to name order
	fallback := FilterAndSort(fixtureProducts(), Criteria{CategoryID: 1, SortKey: "bogus"})
	assert.Equal(t, names(rows), names(fallback))
}

func TestSortPriceHigh(t *testing.T) {
	rows := FilterAndSort(fixtureProducts(), Criteria{SortKey: SortByPriceHigh})
	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].PriceCents, rows[i].PriceCents)
	}
}

func TestSortPriceTiesKeepOriginalOrder(t *testing.T) {
	in := []domain.ProductView{
		pv(1, "B Item", "", 0, 1000, true),
		pv(2, "A Item", "", 0, 1000, true),
		pv(3, "C Item", "", 0, 500, true),
	}
	rows := FilterAndSort(in, Criteria{SortKey: SortByPriceLow})
	assert.Equal(t, []string{"C Item", "B Item", "A Item"}, names(rows))
}

func TestFilterDeterministic(t *testing.T) {
	crit := Criteria{Search: "charg", SortKey: SortByPriceLow}
	first := FilterAndSort(fixtureProducts(), crit)
	for i := 0; i < 5; i++ {
		assert.Equal(t, names(first), names(FilterAndSort(fixtureProducts(), crit)))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := fixtureProducts()
	FilterAndSort(in, Criteria{SortKey: SortByPriceHigh})
	assert.Equal(t, names(fixtureProducts()), names(in))
}
