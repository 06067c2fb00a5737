package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aureliajewels/storefront-api/pkg/backend"
)

// Sort modes accepted by the shop view.
const (
	SortDefault   = "default"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// SortProducts orders a filtered product list for display. The input slice
// is not mutated. Unknown modes fall back to the fetch order.
func SortProducts(products []backend.Product, mode string) []backend.Product {
	out := make([]backend.Product, len(products))
	copy(out, products)

	switch mode {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return priceOf(out[i]).LessThan(priceOf(out[j]))
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return priceOf(out[j]).LessThan(priceOf(out[i]))
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}
	return out
}

// priceOf coerces the wire price, which may be a decimal string, into a
// comparable value. Unparseable prices sort as zero.
func priceOf(product backend.Product) decimal.Decimal {
	price, err := decimal.NewFromString(product.Price.String())
	if err != nil {
		return decimal.Zero
	}
	return price
}
