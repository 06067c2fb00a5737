// Package catalog holds the storefront browse model: the loaded catalog
// snapshot, the category/subcategory drill-down selection, and the product
// sorting rules.
package catalog

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// API is the slice of the backend client the catalog needs.
type API interface {
	Categories(ctx context.Context) ([]backend.Category, error)
	Subcategories(ctx context.Context) ([]backend.Subcategory, error)
	Products(ctx context.Context) ([]backend.Product, error)
	Product(ctx context.Context, id string) (*backend.Product, error)
}

// Level is the drill-down depth of the current selection.
type Level int

const (
	NoneSelected Level = iota
	CategorySelected
	CategoryAndSubcategorySelected
)

// Selection is the current drill-down position. The zero value means no
// category has been chosen yet.
type Selection struct {
	Level         Level
	CategoryID    string
	SubcategoryID string
}

// Snapshot is one full load of the catalog. Categories are mandatory;
// subcategories and products may be empty when their fetches failed.
type Snapshot struct {
	Categories    []backend.Category
	Subcategories []backend.Subcategory
	Products      []backend.Product
}

// Model combines a snapshot with the selection state. It is safe for
// concurrent use.
type Model struct {
	mu        sync.Mutex
	snapshot  Snapshot
	selection Selection
	seeded    bool

	api    API
	logger *logger.Logger
}

func NewModel(api API, logg *logger.Logger) (*Model, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog backend client required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog logger required")
	}
	return &Model{api: api, logger: logg}, nil
}

// Load fetches categories, subcategories and products concurrently. A
// category failure fails the whole load; subcategory and product failures
// are logged and leave their lists empty so the page still renders.
func (m *Model) Load(ctx context.Context) error {
	var snapshot Snapshot

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		categories, err := m.api.Categories(groupCtx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load the catalog")
		}
		snapshot.Categories = categories
		return nil
	})
	group.Go(func() error {
		subcategories, err := m.api.Subcategories(groupCtx)
		if err != nil {
			m.logger.Warn(groupCtx, "subcategory load failed")
			return nil
		}
		snapshot.Subcategories = subcategories
		return nil
	})
	group.Go(func() error {
		products, err := m.api.Products(groupCtx)
		if err != nil {
			m.logger.Warn(groupCtx, "product load failed")
			return nil
		}
		snapshot.Products = products
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}

	m.mu.Lock()
	m.snapshot = snapshot
	m.mu.Unlock()
	return nil
}

// Snapshot returns the last loaded catalog.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

// Selection returns the current drill-down position.
func (m *Model) Selection() Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection
}

// SelectCategory moves to the subcategory level for the given category.
// An unknown id is ignored.
func (m *Model) SelectCategory(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, category := range m.snapshot.Categories {
		if category.ID == id {
			m.selection = Selection{Level: CategorySelected, CategoryID: id}
			return
		}
	}
}

// SelectSubcategory moves to the product level. The subcategory must belong
// to the currently selected category.
func (m *Model) SelectSubcategory(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selection.Level < CategorySelected {
		return
	}
	for _, subcategory := range m.snapshot.Subcategories {
		if subcategory.ID == id && subcategory.Category == m.selection.CategoryID {
			m.selection.Level = CategoryAndSubcategorySelected
			m.selection.SubcategoryID = id
			return
		}
	}
}

// Back moves one level up the drill-down.
func (m *Model) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.selection.Level {
	case CategoryAndSubcategorySelected:
		m.selection.Level = CategorySelected
		m.selection.SubcategoryID = ""
	case CategorySelected:
		m.selection = Selection{}
	}
}

// Reset clears the selection back to the category grid.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = Selection{}
}

// SeedFromSlugs applies category/subcategory slugs from the request URL to
// the selection, exactly once per model. Matching is case-insensitive and a
// subcategory only matches inside the matched category. Repeat calls are
// no-ops so refetches never yank the user back to a deep link.
func (m *Model) SeedFromSlugs(categorySlug, subcategorySlug string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seeded {
		return
	}
	m.seeded = true

	if categorySlug == "" {
		return
	}
	var category *backend.Category
	for i := range m.snapshot.Categories {
		if slugMatch(m.snapshot.Categories[i], categorySlug) {
			category = &m.snapshot.Categories[i]
			break
		}
	}
	if category == nil {
		return
	}
	m.selection = Selection{Level: CategorySelected, CategoryID: category.ID}

	if subcategorySlug == "" {
		return
	}
	for _, subcategory := range m.snapshot.Subcategories {
		if subcategory.Category != category.ID {
			continue
		}
		if strings.EqualFold(subcategory.Slug, subcategorySlug) || strings.EqualFold(subcategory.Name, subcategorySlug) {
			m.selection.Level = CategoryAndSubcategorySelected
			m.selection.SubcategoryID = subcategory.ID
			return
		}
	}
}

func slugMatch(category backend.Category, slug string) bool {
	return strings.EqualFold(category.Slug, slug) || strings.EqualFold(category.Name, slug)
}

// SubcategoriesFor filters the snapshot for one category. Recomputed on
// every call; an empty result is an empty state, not an error.
func (m *Model) SubcategoriesFor(categoryID string) []backend.Subcategory {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []backend.Subcategory
	for _, subcategory := range m.snapshot.Subcategories {
		if subcategory.Category == categoryID {
			out = append(out, subcategory)
		}
	}
	return out
}

// ProductsFor filters the snapshot for one subcategory.
func (m *Model) ProductsFor(subcategoryID string) []backend.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []backend.Product
	for _, product := range m.snapshot.Products {
		if product.Subcategory == subcategoryID {
			out = append(out, product)
		}
	}
	return out
}

// ProductDetails fetches one product and its reviews-ready detail record.
func (m *Model) ProductDetails(ctx context.Context, id string) (*backend.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := m.api.Product(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load the product")
	}
	return product, nil
}
