package catalog

import (
	"testing"

	"github.com/aureliajewels/storefront-api/pkg/backend"
)

func sortFixture() []backend.Product {
	return []backend.Product{
		{ID: "p1", Price: "100.00", CreatedAt: "2024-01-10T00:00:00Z"},
		{ID: "p2", Price: "9.99", CreatedAt: "2024-03-02T00:00:00Z"},
		{ID: "p3", Price: "35.50", CreatedAt: "2024-02-15T00:00:00Z"},
	}
}

func ids(products []backend.Product) []string {
	out := make([]string, len(products))
	for i, product := range products {
		out[i] = product.ID
	}
	return out
}

func assertOrder(t *testing.T, got []backend.Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v want %v", gotIDs, want)
		}
	}
}

func TestSortProductsPriceLowComparesNumerically(t *testing.T) {
	t.Parallel()

	// "9.99" sorts before "100.00" only under numeric comparison; a string
	// sort would invert them.
	assertOrder(t, SortProducts(sortFixture(), SortPriceLow), "p2", "p3", "p1")
}

func TestSortProductsPriceHigh(t *testing.T) {
	t.Parallel()

	assertOrder(t, SortProducts(sortFixture(), SortPriceHigh), "p1", "p3", "p2")
}

func TestSortProductsNewestDescendsByCreatedAt(t *testing.T) {
	t.Parallel()

	assertOrder(t, SortProducts(sortFixture(), SortNewest), "p2", "p3", "p1")
}

func TestSortProductsUnknownModeKeepsFetchOrder(t *testing.T) {
	t.Parallel()

	assertOrder(t, SortProducts(sortFixture(), "alphabetical"), "p1", "p2", "p3")
	assertOrder(t, SortProducts(sortFixture(), SortDefault), "p1", "p2", "p3")
}

func TestSortProductsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := sortFixture()
	SortProducts(input, SortPriceLow)
	assertOrder(t, input, "p1", "p2", "p3")
}

func TestSortProductsUnparseablePriceSortsAsZero(t *testing.T) {
	t.Parallel()

	input := append(sortFixture(), backend.Product{ID: "p4", Price: ""})
	assertOrder(t, SortProducts(input, SortPriceLow), "p4", "p2", "p3", "p1")
}
