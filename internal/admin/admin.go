// Package admin is the owner-only console: a joint dashboard load over the
// whole catalog plus order and notice management. Every mutation is a thin
// validated passthrough; the backend stays authoritative.
package admin

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// RoleOwner is the role the backend reports for the shop owner.
const RoleOwner = "owner"

// API is the slice of the backend client the console needs.
type API interface {
	Role(ctx context.Context) (string, error)
	Order(ctx context.Context, id string) (*backend.Order, error)
	Categories(ctx context.Context) ([]backend.Category, error)
	Subcategories(ctx context.Context) ([]backend.Subcategory, error)
	Products(ctx context.Context) ([]backend.Product, error)
	Orders(ctx context.Context) ([]backend.Order, error)
	Notices(ctx context.Context) ([]backend.Notice, error)

	CreateCategory(ctx context.Context, name, description string) (*backend.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateSubcategory(ctx context.Context, name, categoryID string) (*backend.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, input backend.ProductInput) (*backend.Product, error)
	PatchProduct(ctx context.Context, id string, input backend.ProductInput) (*backend.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	UpdateOrderStatus(ctx context.Context, id, status string) (*backend.Order, error)
	CancelOrder(ctx context.Context, id string) (*backend.Order, error)
}

// ErrNotOwner gates every console operation.
var ErrNotOwner = pkgerrors.New(pkgerrors.CodeForbidden, "owner access required")

// Dashboard is one joint load of everything the console shows. Lists whose
// fetch failed are empty; the load error aggregates those failures.
type Dashboard struct {
	Categories    []backend.Category    `json:"categories"`
	Subcategories []backend.Subcategory `json:"subcategories"`
	Products      []backend.Product     `json:"products"`
	Orders        []backend.Order       `json:"orders"`
	Notices       []backend.Notice      `json:"notices"`
}

type Service struct {
	api    API
	logger *logger.Logger
}

func NewService(api API, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admin backend client required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "admin logger required")
	}
	return &Service{api: api, logger: logg}, nil
}

// EnsureOwner checks the backend role lookup. Anything but owner is
// forbidden; a lookup failure is a dependency error, not a denial.
func (s *Service) EnsureOwner(ctx context.Context) error {
	role, err := s.api.Role(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to check your role")
	}
	if !strings.EqualFold(role, RoleOwner) {
		return ErrNotOwner
	}
	return nil
}

// LoadDashboard fans out over all console resources at once. Each failure
// is captured independently; whatever loaded is returned alongside the
// aggregate error so the console can render partial data.
func (s *Service) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	if err := s.EnsureOwner(ctx); err != nil {
		return nil, err
	}

	var dashboard Dashboard
	var mu sync.Mutex
	var loadErr error

	capture := func(name string, err error) {
		s.logger.Warn(ctx, "dashboard "+name+" load failed")
		mu.Lock()
		loadErr = multierr.Append(loadErr, err)
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		categories, err := s.api.Categories(ctx)
		if err != nil {
			capture("categories", err)
			return
		}
		dashboard.Categories = categories
	}()
	go func() {
		defer wg.Done()
		subcategories, err := s.api.Subcategories(ctx)
		if err != nil {
			capture("subcategories", err)
			return
		}
		dashboard.Subcategories = subcategories
	}()
	go func() {
		defer wg.Done()
		products, err := s.api.Products(ctx)
		if err != nil {
			capture("products", err)
			return
		}
		dashboard.Products = products
	}()
	go func() {
		defer wg.Done()
		orders, err := s.api.Orders(ctx)
		if err != nil {
			capture("orders", err)
			return
		}
		dashboard.Orders = orders
	}()
	go func() {
		defer wg.Done()
		notices, err := s.api.Notices(ctx)
		if err != nil {
			capture("notices", err)
			return
		}
		dashboard.Notices = notices
	}()
	wg.Wait()

	return &dashboard, loadErr
}

// CreateCategory adds a catalog bucket.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*backend.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	category, err := s.api.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to create the category")
	}
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to delete the category")
	}
	return nil
}

// CreateSubcategory adds a subcategory under an existing category.
func (s *Service) CreateSubcategory(ctx context.Context, name, categoryID string) (*backend.Subcategory, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(categoryID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subcategory name and category required")
	}
	subcategory, err := s.api.CreateSubcategory(ctx, name, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to create the subcategory")
	}
	return subcategory, nil
}

func (s *Service) DeleteSubcategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "subcategory id required")
	}
	if err := s.api.DeleteSubcategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to delete the subcategory")
	}
	return nil
}

// CreateProduct adds a jewelry item. The image URL comes from the media
// upload flow before this call.
func (s *Service) CreateProduct(ctx context.Context, input backend.ProductInput) (*backend.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if strings.TrimSpace(input.Subcategory) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product subcategory required")
	}
	if input.Price.String() == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price required")
	}
	product, err := s.api.CreateProduct(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to create the product")
	}
	return product, nil
}

// SetProductActive flips the listing visibility.
func (s *Service) SetProductActive(ctx context.Context, id string, active bool) (*backend.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.api.PatchProduct(ctx, id, backend.ProductInput{IsActive: &active})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to update the product")
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to delete the product")
	}
	return nil
}

// Accept moves a pending order into fulfilment.
func (s *Service) Accept(ctx context.Context, order backend.Order) (*backend.Order, error) {
	if err := requireStatus(order, backend.OrderStatusPending); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateOrderStatus(ctx, order.ID, backend.OrderStatusAccepted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to accept the order")
	}
	return updated, nil
}

// Complete marks an accepted order as fulfilled.
func (s *Service) Complete(ctx context.Context, order backend.Order) (*backend.Order, error) {
	if err := requireStatus(order, backend.OrderStatusAccepted); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateOrderStatus(ctx, order.ID, backend.OrderStatusCompleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to complete the order")
	}
	return updated, nil
}

// Cancel voids a pending order through the dedicated cancel endpoint.
func (s *Service) Cancel(ctx context.Context, order backend.Order) (*backend.Order, error) {
	if err := requireStatus(order, backend.OrderStatusPending); err != nil {
		return nil, err
	}
	updated, err := s.api.CancelOrder(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to cancel the order")
	}
	return updated, nil
}

// Transition looks up the order's current status and applies the named
// action: accept, complete or cancel.
func (s *Service) Transition(ctx context.Context, orderID, action string) (*backend.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.api.Order(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load the order")
	}
	switch strings.ToLower(action) {
	case "accept":
		return s.Accept(ctx, *order)
	case "complete":
		return s.Complete(ctx, *order)
	case "cancel":
		return s.Cancel(ctx, *order)
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "action must be accept, complete or cancel")
}

func requireStatus(order backend.Order, want string) error {
	if strings.TrimSpace(order.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !strings.EqualFold(order.Status, want) {
		return pkgerrors.New(pkgerrors.CodeConflict, "order is not "+want)
	}
	return nil
}
