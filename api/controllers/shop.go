package controllers

import (
	"net/http"
	"strings"

	"github.com/aureliajewels/storefront-api/api/responses"
	catalogmodel "github.com/aureliajewels/storefront-api/internal/catalog"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type shopView struct {
	Level         string                `json:"level"`
	Categories    []backend.Category    `json:"categories"`
	Subcategories []backend.Subcategory `json:"subcategories,omitempty"`
	Products      []backend.Product     `json:"products,omitempty"`
	Sort          string                `json:"sort"`
}

// ShopView renders the drill-down browse page. The query parameters drive
// the whole selection: category and subcategory slugs seed the position,
// sort orders the filtered product list.
func ShopView(api catalogmodel.API, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		model, err := catalogmodel.NewModel(api, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := model.Load(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		model.SeedFromSlugs(query.Get("category"), query.Get("subcategory"))
		sortMode := strings.TrimSpace(query.Get("sort"))
		if sortMode == "" {
			sortMode = catalogmodel.SortDefault
		}

		selection := model.Selection()
		view := shopView{
			Level:      levelName(selection.Level),
			Categories: model.Snapshot().Categories,
			Sort:       sortMode,
		}
		switch selection.Level {
		case catalogmodel.CategorySelected:
			view.Subcategories = model.SubcategoriesFor(selection.CategoryID)
		case catalogmodel.CategoryAndSubcategorySelected:
			view.Subcategories = model.SubcategoriesFor(selection.CategoryID)
			view.Products = catalogmodel.SortProducts(model.ProductsFor(selection.SubcategoryID), sortMode)
		}

		responses.WriteSuccess(w, view)
	}
}

func levelName(level catalogmodel.Level) string {
	switch level {
	case catalogmodel.CategorySelected:
		return "category"
	case catalogmodel.CategoryAndSubcategorySelected:
		return "subcategory"
	}
	return "none"
}
