package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/aureliajewels/storefront-api/internal/profile"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	"github.com/aureliajewels/storefront-api/pkg/config"
	"github.com/aureliajewels/storefront-api/pkg/logger"
	"github.com/aureliajewels/storefront-api/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newBackendClient(t *testing.T, baseURL string) *backend.Client {
	t.Helper()
	client, err := backend.NewClient(config.BackendConfig{BaseURL: baseURL}, backend.NewSession(), testLogger())
	if err != nil {
		t.Fatalf("building backend client: %v", err)
	}
	return client
}

type fakeCatalogAPI struct {
	categories    []backend.Category
	subcategories []backend.Subcategory
	products      []backend.Product
	product       *backend.Product
}

func (f *fakeCatalogAPI) Categories(ctx context.Context) ([]backend.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogAPI) Subcategories(ctx context.Context) ([]backend.Subcategory, error) {
	return f.subcategories, nil
}

func (f *fakeCatalogAPI) Products(ctx context.Context) ([]backend.Product, error) {
	return f.products, nil
}

func (f *fakeCatalogAPI) Product(ctx context.Context, id string) (*backend.Product, error) {
	return f.product, nil
}

func browseFixture() *fakeCatalogAPI {
	return &fakeCatalogAPI{
		categories: []backend.Category{
			{ID: "c1", Name: "Rings", Slug: "rings"},
		},
		subcategories: []backend.Subcategory{
			{ID: "s1", Name: "Gold", Category: "c1", Slug: "gold"},
		},
		products: []backend.Product{
			{ID: "p1", Name: "Band", Subcategory: "s1", Price: "120.00"},
			{ID: "p2", Name: "Signet", Subcategory: "s1", Price: "85.50"},
		},
	}
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if rec.Code != http.StatusOK && rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) types.APIError {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return envelope.Error
}

func TestShopViewCategoryGrid(t *testing.T) {
	t.Parallel()

	handler := ShopView(browseFixture(), testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var view shopView
	decodeSuccess(t, rec, &view)
	if view.Level != "none" || len(view.Categories) != 1 {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Products != nil {
		t.Fatalf("expected no products at category grid, got %+v", view.Products)
	}
}

func TestShopViewDeepLinkWithSort(t *testing.T) {
	t.Parallel()

	handler := ShopView(browseFixture(), testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop?category=RINGS&subcategory=gold&sort=price-low", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var view shopView
	decodeSuccess(t, rec, &view)
	if view.Level != "subcategory" {
		t.Fatalf("unexpected level %q", view.Level)
	}
	if len(view.Products) != 2 || view.Products[0].ID != "p2" {
		t.Fatalf("expected price-low order, got %+v", view.Products)
	}
}

func TestCartFetchRequiresToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()
	client := newBackendClient(t, server.URL)

	handler := CartFetch(client, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	apiErr := decodeError(t, rec)
	if apiErr.Code != "UNAUTHORIZED" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestCartFetchWithForwardedToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"c1","items":[{"id":"a","quantity":2,"jewelry_item":{"id":"p1","name":"Band","price":"10.50","image_url":""}}]}`))
	}))
	defer server.Close()
	client := newBackendClient(t, server.URL)

	handler := CartFetch(client, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(backend.ContextWithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	var view cartView
	decodeSuccess(t, rec, &view)
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected forwarded token, got %q", gotAuth)
	}
	if view.Subtotal != "21.00" {
		t.Fatalf("unexpected subtotal %q", view.Subtotal)
	}
}

func TestReviewCreateRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	}))
	defer server.Close()
	client := newBackendClient(t, server.URL)

	handler := ReviewCreate(client, testLogger())
	body := bytes.NewBufferString(`{"jewelry_item":"p1","rating":9,"comment":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", body)
	req = req.WithContext(backend.ContextWithToken(req.Context(), "tok-1"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProductDetailsDegradesOnReviewFailure(t *testing.T) {
	t.Parallel()

	catalogAPI := browseFixture()
	catalogAPI.product = &backend.Product{ID: "p1", Name: "Band", Price: "120.00"}

	handler := ProductDetails(catalogAPI, failingReviews{}, testLogger())
	router := chi.NewRouter()
	router.Get("/products/{id}", handler)

	req := httptest.NewRequest(http.MethodGet, "/products/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var view productView
	decodeSuccess(t, rec, &view)
	if view.Product == nil || view.Product.ID != "p1" {
		t.Fatalf("unexpected product %+v", view.Product)
	}
	if len(view.Reviews) != 0 || view.Stars != 0 {
		t.Fatalf("expected empty review state, got %+v", view)
	}
}

type failingReviews struct{}

func (failingReviews) Reviews(ctx context.Context, productID string) ([]backend.Review, error) {
	return nil, io.ErrUnexpectedEOF
}

func (failingReviews) CreateReview(ctx context.Context, input backend.ReviewInput) (*backend.Review, error) {
	return nil, io.ErrUnexpectedEOF
}

func TestContactSendValidatesEmail(t *testing.T) {
	t.Parallel()

	svc, err := profile.NewService(stubProfileAPI{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	handler := ContactSend(svc, testLogger())

	body := bytes.NewBufferString(`{"name":"Ada","email":"not-an-email","subject":"hi","message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", body)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	apiErr := decodeError(t, rec)
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

type stubProfileAPI struct{}

func (stubProfileAPI) Profile(ctx context.Context) (*backend.Profile, error) {
	return &backend.Profile{}, nil
}

func (stubProfileAPI) UpdateProfile(ctx context.Context, p backend.Profile) (*backend.Profile, error) {
	return &p, nil
}

func (stubProfileAPI) Role(ctx context.Context) (string, error) { return "customer", nil }

func (stubProfileAPI) SendEmail(ctx context.Context, msg backend.EmailMessage) error { return nil }
