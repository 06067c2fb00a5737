// Package orders covers checkout initiation and order history. The backend
// derives order contents from the server-side cart, so placement is a
// single bodyless call.
package orders

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// API is the slice of the backend client order placement needs.
type API interface {
	Orders(ctx context.Context) ([]backend.Order, error)
	CreateOrder(ctx context.Context) (*backend.Order, error)
	Order(ctx context.Context, id string) (*backend.Order, error)
}

// CartRefresher refetches the cart after a successful placement.
type CartRefresher interface {
	Fetch(ctx context.Context) error
}

const placementFallback = "unable to place the order"

// Service places orders and reads history. Placement has no client-side
// idempotency key; a double submission creates two orders. Known gap.
type Service struct {
	api    API
	cart   CartRefresher
	logger *logger.Logger
}

func NewService(api API, cart CartRefresher, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders backend client required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders logger required")
	}
	return &Service{api: api, cart: cart, logger: logg}, nil
}

// Place submits the order. On success the cart is refreshed so the emptied
// server cart is reflected immediately; a refresh failure is logged, not
// surfaced, because the order already exists. On failure the most specific
// backend message is surfaced and the cart is left untouched.
func (s *Service) Place(ctx context.Context) (*backend.Order, error) {
	order, err := s.api.CreateOrder(ctx)
	if err != nil {
		message := placementFallback
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message = apiErr.Message(placementFallback)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
	}

	if s.cart != nil {
		if err := s.cart.Fetch(ctx); err != nil {
			ctx := s.logger.WithOrderID(ctx, order.ID)
			s.logger.Warn(ctx, "cart refresh after checkout failed")
		}
	}
	return order, nil
}

// List returns the caller's order history.
func (s *Service) List(ctx context.Context) ([]backend.Order, error) {
	orders, err := s.api.Orders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load orders")
	}
	return orders, nil
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, id string) (*backend.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.api.Order(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load the order")
	}
	return order, nil
}

// LineAmount computes quantity times unit price for display. The order
// total always comes from the server.
func LineAmount(item backend.OrderItem) decimal.Decimal {
	price, err := decimal.NewFromString(item.JewelryItem.Price.String())
	if err != nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}
