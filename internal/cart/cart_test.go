package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

type fakeAPI struct {
	cartFn   func(ctx context.Context) (*backend.Cart, error)
	addFn    func(ctx context.Context, productID string, quantity int) (*backend.CartItem, error)
	updateFn func(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error)
	deleteFn func(ctx context.Context, itemID string) error

	cartCalls int
}

func (f *fakeAPI) Cart(ctx context.Context) (*backend.Cart, error) {
	f.cartCalls++
	if f.cartFn == nil {
		return &backend.Cart{}, nil
	}
	return f.cartFn(ctx)
}

func (f *fakeAPI) AddCartItem(ctx context.Context, productID string, quantity int) (*backend.CartItem, error) {
	if f.addFn == nil {
		return &backend.CartItem{}, nil
	}
	return f.addFn(ctx, productID, quantity)
}

func (f *fakeAPI) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error) {
	if f.updateFn == nil {
		return &backend.CartItem{}, nil
	}
	return f.updateFn(ctx, itemID, quantity)
}

func (f *fakeAPI) DeleteCartItem(ctx context.Context, itemID string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, itemID)
}

type fakeAuth struct{ signedIn bool }

func (f fakeAuth) IsAuthenticated() bool { return f.signedIn }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func twoLineCart() *backend.Cart {
	return &backend.Cart{
		ID: "cart-1",
		Items: []backend.CartItem{
			{ID: "a", Quantity: 2, JewelryItem: backend.JewelryRef{ID: "p1", Name: "Band", Price: "10.50"}},
			{ID: "b", Quantity: 1, JewelryItem: backend.JewelryRef{ID: "p2", Name: "Stud", Price: "4.00"}},
		},
	}
}

func newReconciler(t *testing.T, api *fakeAPI, auth Authenticator) *Reconciler {
	t.Helper()
	reconciler, err := NewReconciler(api, auth, testLogger())
	if err != nil {
		t.Fatalf("unexpected reconciler error: %v", err)
	}
	return reconciler
}

func TestFetchRequiresSession(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: false})

	if err := reconciler.Fetch(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if api.cartCalls != 0 {
		t.Fatalf("expected no backend call, got %d", api.cartCalls)
	}
}

func TestFetchSeedsQuantityEdits(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cartFn: func(ctx context.Context) (*backend.Cart, error) {
		return twoLineCart(), nil
	}}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	if err := reconciler.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reconciler.QuantityEdit("a"); got != 2 {
		t.Fatalf("expected edit buffer seeded to 2, got %d", got)
	}
	if got := reconciler.QuantityEdit("b"); got != 1 {
		t.Fatalf("expected edit buffer seeded to 1, got %d", got)
	}
	if items := reconciler.Items(); len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestUpdateQuantityRejectsNonPositiveLocally(t *testing.T) {
	t.Parallel()

	updateCalls := 0
	api := &fakeAPI{updateFn: func(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error) {
		updateCalls++
		return &backend.CartItem{}, nil
	}}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	for _, quantity := range []int{0, -3} {
		err := reconciler.UpdateQuantity(context.Background(), "a", quantity)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %d, got %v", quantity, err)
		}
	}
	if updateCalls != 0 {
		t.Fatalf("expected no backend calls, got %d", updateCalls)
	}
	if api.cartCalls != 0 {
		t.Fatalf("expected no refetch, got %d", api.cartCalls)
	}
}

func TestUpdateQuantityPatchesThenRefetches(t *testing.T) {
	t.Parallel()

	var gotItemID string
	var gotQuantity int
	api := &fakeAPI{
		cartFn: func(ctx context.Context) (*backend.Cart, error) {
			cart := twoLineCart()
			cart.Items[0].Quantity = 5
			return cart, nil
		},
		updateFn: func(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error) {
			gotItemID, gotQuantity = itemID, quantity
			return &backend.CartItem{ID: itemID, Quantity: quantity}, nil
		},
	}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	if err := reconciler.UpdateQuantity(context.Background(), "a", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotItemID != "a" || gotQuantity != 5 {
		t.Fatalf("unexpected patch %s=%d", gotItemID, gotQuantity)
	}
	if api.cartCalls != 1 {
		t.Fatalf("expected exactly one refetch, got %d", api.cartCalls)
	}
	if got := reconciler.QuantityEdit("a"); got != 5 {
		t.Fatalf("expected buffer reseeded to server truth, got %d", got)
	}
	if reconciler.UpdatingID() != "" {
		t.Fatal("expected in-flight guard released")
	}
}

func TestUpdateQuantityRejectsRepeatSubmission(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	api := &fakeAPI{
		updateFn: func(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error) {
			close(started)
			<-release
			return &backend.CartItem{}, nil
		},
	}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	done := make(chan error, 1)
	go func() {
		done <- reconciler.UpdateQuantity(context.Background(), "a", 2)
	}()
	<-started

	if err := reconciler.UpdateQuantity(context.Background(), "a", 4); !errors.Is(err, ErrUpdateInFlight) {
		t.Fatalf("expected ErrUpdateInFlight for the same line, got %v", err)
	}
	if got := reconciler.UpdatingID(); got != "a" {
		t.Fatalf("expected in-flight id a, got %q", got)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected first-write error: %v", err)
	}
	if reconciler.UpdatingID() != "" {
		t.Fatal("expected in-flight guard released")
	}
}

func TestUpdateQuantityAllowsOtherItemsWhileInFlight(t *testing.T) {
	t.Parallel()

	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	api := &fakeAPI{
		updateFn: func(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error) {
			if itemID == "a" {
				close(startedA)
				<-releaseA
			}
			return &backend.CartItem{ID: itemID, Quantity: quantity}, nil
		},
	}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	done := make(chan error, 1)
	go func() {
		done <- reconciler.UpdateQuantity(context.Background(), "a", 2)
	}()
	<-startedA

	// A write to a different line must not be serialized behind a's.
	if err := reconciler.UpdateQuantity(context.Background(), "b", 3); err != nil {
		t.Fatalf("unexpected error for unrelated line: %v", err)
	}

	close(releaseA)
	if err := <-done; err != nil {
		t.Fatalf("unexpected first-write error: %v", err)
	}
	if reconciler.UpdatingID() != "" {
		t.Fatal("expected in-flight guard released")
	}
}

func TestRemoveAllowsOtherItemsWhileInFlight(t *testing.T) {
	t.Parallel()

	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	api := &fakeAPI{
		deleteFn: func(ctx context.Context, itemID string) error {
			if itemID == "a" {
				close(startedA)
				<-releaseA
			}
			return nil
		},
	}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	done := make(chan error, 1)
	go func() {
		done <- reconciler.Remove(context.Background(), "a")
	}()
	<-startedA

	if err := reconciler.Remove(context.Background(), "b"); err != nil {
		t.Fatalf("unexpected error for unrelated line: %v", err)
	}

	close(releaseA)
	if err := <-done; err != nil {
		t.Fatalf("unexpected first-remove error: %v", err)
	}
}

func TestRemoveDeletesThenRefetches(t *testing.T) {
	t.Parallel()

	var deleted string
	api := &fakeAPI{
		cartFn: func(ctx context.Context) (*backend.Cart, error) {
			cart := twoLineCart()
			cart.Items = cart.Items[1:]
			return cart, nil
		},
		deleteFn: func(ctx context.Context, itemID string) error {
			deleted = itemID
			return nil
		},
	}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	if err := reconciler.Remove(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "a" {
		t.Fatalf("expected delete of a, got %q", deleted)
	}
	items := reconciler.Items()
	if len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("expected deleted line absent after refetch, got %+v", items)
	}
	if got := reconciler.QuantityEdit("a"); got != 0 {
		t.Fatalf("expected stale edit dropped, got %d", got)
	}
}

func TestSubtotalSumsQuantityTimesPrice(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{cartFn: func(ctx context.Context) (*backend.Cart, error) {
		return twoLineCart(), nil
	}}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})
	if err := reconciler.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 x 10.50 + 1 x 4.00
	if got := reconciler.Subtotal().StringFixed(2); got != "25.00" {
		t.Fatalf("expected subtotal 25.00, got %s", got)
	}
}

func TestWriteFailureLeavesGuardReleased(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{updateFn: func(ctx context.Context, itemID string, quantity int) (*backend.CartItem, error) {
		return nil, errors.New("backend down")
	}}
	reconciler := newReconciler(t, api, fakeAuth{signedIn: true})

	err := reconciler.UpdateQuantity(context.Background(), "a", 2)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if reconciler.UpdatingID() != "" {
		t.Fatal("expected guard released after failure")
	}
}
