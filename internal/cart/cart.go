// Package cart reconciles the user's cart view with the backend. The server
// copy is always authoritative: every write is followed by a full refetch,
// never an optimistic local merge.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// API is the slice of the backend client the cart needs.
type API interface {
	Cart(ctx context.Context) (*backend.Cart, error)
	AddCartItem(ctx context.Context, productID string, quantity int) (*backend.CartItem, error)
	UpdateCartItem(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error)
	DeleteCartItem(ctx context.Context, itemID string) error
}

// Authenticator reports whether a signed-in session exists.
type Authenticator interface {
	IsAuthenticated() bool
}

var (
	// ErrNotSignedIn is returned before any backend call when there is no
	// session.
	ErrNotSignedIn = pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view your cart")
	// ErrUpdateInFlight is returned for a repeat write to an item whose
	// previous write is still being reconciled. Other items are not
	// affected.
	ErrUpdateInFlight = pkgerrors.New(pkgerrors.CodeConflict, "this item is already being updated")
)

// Reconciler holds the fetched cart, the local quantity-edit buffer and the
// in-flight write guard. Safe for concurrent use.
type Reconciler struct {
	mu         sync.Mutex
	items      []backend.CartItem
	edits      map[string]int
	updatingID string

	api    API
	auth   Authenticator
	logger *logger.Logger
}

func NewReconciler(api API, auth Authenticator, logg *logger.Logger) (*Reconciler, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart backend client required")
	}
	if auth == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart authenticator required")
	}
	return &Reconciler{
		api:    api,
		auth:   auth,
		edits:  map[string]int{},
		logger: logg,
	}, nil
}

// Fetch pulls the authoritative cart and reseeds the quantity-edit buffer
// from the server quantities, dropping edits for items that disappeared.
func (r *Reconciler) Fetch(ctx context.Context) error {
	if !r.auth.IsAuthenticated() {
		return ErrNotSignedIn
	}
	cart, err := r.api.Cart(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load the cart")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = cart.Items
	r.edits = make(map[string]int, len(cart.Items))
	for _, item := range cart.Items {
		r.edits[item.ID] = item.Quantity
	}
	return nil
}

// Items returns the last fetched cart lines.
func (r *Reconciler) Items() []backend.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]backend.CartItem, len(r.items))
	copy(out, r.items)
	return out
}

// QuantityEdit returns the buffered quantity for an item, falling back to
// zero for unknown ids.
func (r *Reconciler) QuantityEdit(itemID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.edits[itemID]
}

// UpdatingID returns the id of the item with a write in flight, if any.
func (r *Reconciler) UpdatingID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updatingID
}

// Add puts a product into the cart and refetches.
func (r *Reconciler) Add(ctx context.Context, productID string, quantity int) error {
	if !r.auth.IsAuthenticated() {
		return ErrNotSignedIn
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if _, err := r.api.AddCartItem(ctx, productID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to add to the cart")
	}
	return r.Fetch(ctx)
}

// UpdateQuantity submits a buffered quantity change. Non-positive values
// are rejected locally with no request and no state change. The write is
// gated per line so it cannot be double-submitted; other lines proceed.
func (r *Reconciler) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if !r.auth.IsAuthenticated() {
		return ErrNotSignedIn
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if err := r.begin(itemID); err != nil {
		return err
	}
	defer r.finish()

	if _, err := r.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to update the cart")
	}
	return r.Fetch(ctx)
}

// Remove deletes a line and refetches, under the same in-flight guard.
func (r *Reconciler) Remove(ctx context.Context, itemID string) error {
	if !r.auth.IsAuthenticated() {
		return ErrNotSignedIn
	}
	if err := r.begin(itemID); err != nil {
		return err
	}
	defer r.finish()

	if err := r.api.DeleteCartItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to remove the item")
	}
	return r.Fetch(ctx)
}

// Subtotal sums quantity times unit price over the fetched lines. Display
// only; the backend computes the real order total.
func (r *Reconciler) Subtotal() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := decimal.Zero
	for _, item := range r.items {
		price, err := decimal.NewFromString(item.JewelryItem.Price.String())
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// begin marks an item as having a write in flight. Only a repeat
// submission for the same item is rejected; writes to other items proceed
// and take over the marker.
func (r *Reconciler) begin(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if itemID != "" && r.updatingID == itemID {
		return ErrUpdateInFlight
	}
	r.updatingID = itemID
	return nil
}

func (r *Reconciler) finish() {
	r.mu.Lock()
	r.updatingID = ""
	r.mu.Unlock()
}
