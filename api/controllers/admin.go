package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aureliajewels/storefront-api/api/responses"
	"github.com/aureliajewels/storefront-api/api/validators"
	adminsvc "github.com/aureliajewels/storefront-api/internal/admin"
	noticesvc "github.com/aureliajewels/storefront-api/internal/notices"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type createSubcategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Weight      string `json:"weight"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory" validate:"required"`
}

type setProductActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type orderActionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept complete cancel"`
}

type noticeRequest struct {
	Message    string `json:"message" validate:"required"`
	NoticeType string `json:"notice_type" validate:"required"`
}

// AdminDashboard serves the joint console load. Partial failures are
// reported alongside the data that did load.
func AdminDashboard(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		dashboard, err := svc.LoadDashboard(r.Context())
		if dashboard == nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view := map[string]any{"dashboard": dashboard}
		if err != nil {
			view["partial"] = true
			logg.Warn(r.Context(), "dashboard served with partial data")
		}
		responses.WriteSuccess(w, view)
	}
}

func AdminCategoryCreate(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), payload.Name, payload.Description)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

func AdminCategoryDelete(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminSubcategoryCreate(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		var payload createSubcategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		subcategory, err := svc.CreateSubcategory(r.Context(), payload.Name, payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, subcategory)
	}
}

func AdminSubcategoryDelete(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		if err := svc.DeleteSubcategory(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminProductCreate(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.CreateProduct(r.Context(), backend.ProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			Price:       json.Number(payload.Price),
			Weight:      json.Number(payload.Weight),
			ImageURL:    payload.ImageURL,
			Category:    payload.Category,
			Subcategory: payload.Subcategory,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func AdminProductSetActive(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		var payload setProductActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.SetProductActive(r.Context(), chi.URLParam(r, "id"), *payload.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func AdminProductDelete(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminOrderAction moves an order through its lifecycle: accept, complete
// or cancel.
func AdminOrderAction(svc *adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin console unavailable"))
			return
		}

		var payload orderActionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Transition(r.Context(), chi.URLParam(r, "id"), payload.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderView(*order))
	}
}

func AdminNoticeCreate(svc *noticesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notices unavailable"))
			return
		}

		var payload noticeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		notice, err := svc.Create(r.Context(), payload.Message, payload.NoticeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, notice)
	}
}

func AdminNoticeUpdate(svc *noticesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notices unavailable"))
			return
		}

		var payload noticeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		notice, err := svc.Update(r.Context(), chi.URLParam(r, "id"), payload.Message, payload.NoticeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, notice)
	}
}

func AdminNoticeDelete(svc *noticesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notices unavailable"))
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
