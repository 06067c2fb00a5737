package notices

import (
	"context"
	"errors"
	"testing"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
)

type fakeAPI struct {
	noticesFn func(ctx context.Context) ([]backend.Notice, error)
	createFn  func(ctx context.Context, input backend.NoticeInput) (*backend.Notice, error)
	updateFn  func(ctx context.Context, id string, input backend.NoticeInput) (*backend.Notice, error)
	deleteFn  func(ctx context.Context, id string) error

	createCalls int
}

func (f *fakeAPI) Notices(ctx context.Context) ([]backend.Notice, error) {
	if f.noticesFn == nil {
		return nil, nil
	}
	return f.noticesFn(ctx)
}

func (f *fakeAPI) CreateNotice(ctx context.Context, input backend.NoticeInput) (*backend.Notice, error) {
	f.createCalls++
	if f.createFn == nil {
		return &backend.Notice{}, nil
	}
	return f.createFn(ctx, input)
}

func (f *fakeAPI) UpdateNotice(ctx context.Context, id string, input backend.NoticeInput) (*backend.Notice, error) {
	if f.updateFn == nil {
		return &backend.Notice{}, nil
	}
	return f.updateFn(ctx, id, input)
}

func (f *fakeAPI) DeleteNotice(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func TestPartitionSplitsCaseInsensitively(t *testing.T) {
	t.Parallel()

	groups := Partition([]backend.Notice{
		{ID: "n1", NoticeType: "Offer"},
		{ID: "n2", NoticeType: "PRICE CHANGE"},
		{ID: "n3", NoticeType: "price_update"},
		{ID: "n4", NoticeType: "notice"},
		{ID: "n5", NoticeType: "maintenance"},
	})

	if len(groups.Offers) != 1 || groups.Offers[0].ID != "n1" {
		t.Fatalf("unexpected offers %+v", groups.Offers)
	}
	if len(groups.PriceChanges) != 2 {
		t.Fatalf("expected both price variants grouped, got %+v", groups.PriceChanges)
	}
	if len(groups.General) != 2 {
		t.Fatalf("unexpected general %+v", groups.General)
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	t.Parallel()

	groups := Partition(nil)
	if len(groups.Offers)+len(groups.PriceChanges)+len(groups.General) != 0 {
		t.Fatalf("expected empty groups, got %+v", groups)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	svc, err := NewService(api)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Create(context.Background(), "big sale", "announcement")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.createCalls != 0 {
		t.Fatalf("expected no backend call, got %d", api.createCalls)
	}
}

func TestCreateRejectsBlankMessage(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&fakeAPI{})
	_, err := svc.Create(context.Background(), "  ", backend.NoticeTypeOffer)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateAcceptsAllowedTypes(t *testing.T) {
	t.Parallel()

	var gotInput backend.NoticeInput
	api := &fakeAPI{createFn: func(ctx context.Context, input backend.NoticeInput) (*backend.Notice, error) {
		gotInput = input
		return &backend.Notice{ID: "n1", Message: input.Message, NoticeType: input.NoticeType}, nil
	}}
	svc, _ := NewService(api)

	for _, kind := range []string{backend.NoticeTypeOffer, backend.NoticeTypeNotice, backend.NoticeTypePriceChange} {
		if _, err := svc.Create(context.Background(), "hello", kind); err != nil {
			t.Fatalf("unexpected error for %q: %v", kind, err)
		}
		if gotInput.NoticeType != kind {
			t.Fatalf("unexpected payload %+v", gotInput)
		}
	}
}

func TestUpdateRequiresID(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&fakeAPI{})
	_, err := svc.Update(context.Background(), "", "msg", backend.NoticeTypeNotice)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteWrapsBackendFailure(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{deleteFn: func(ctx context.Context, id string) error {
		return errors.New("gone wrong")
	}}
	svc, _ := NewService(api)

	err := svc.Delete(context.Background(), "n1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLoadPartitionsFetchedNotices(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{noticesFn: func(ctx context.Context) ([]backend.Notice, error) {
		return []backend.Notice{
			{ID: "n1", NoticeType: "offer"},
			{ID: "n2", NoticeType: "price change"},
		}, nil
	}}
	svc, _ := NewService(api)

	groups, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups.Offers) != 1 || len(groups.PriceChanges) != 1 {
		t.Fatalf("unexpected groups %+v", groups)
	}
}
