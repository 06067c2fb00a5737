// Package notices loads storefront announcements and splits them into the
// three banner groups the site renders.
package notices

import (
	"context"
	"strings"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
)

// API is the slice of the backend client notices need.
type API interface {
	Notices(ctx context.Context) ([]backend.Notice, error)
	CreateNotice(ctx context.Context, input backend.NoticeInput) (*backend.Notice, error)
	UpdateNotice(ctx context.Context, id string, input backend.NoticeInput) (*backend.Notice, error)
	DeleteNotice(ctx context.Context, id string) error
}

// Groups is the partitioned notice list. A notice lands in exactly one
// group: offers first, then anything whose type mentions price, then the
// general pile.
type Groups struct {
	Offers       []backend.Notice `json:"offers"`
	PriceChanges []backend.Notice `json:"price_changes"`
	General      []backend.Notice `json:"general"`
}

type Service struct {
	api API
}

func NewService(api API) (*Service, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notices backend client required")
	}
	return &Service{api: api}, nil
}

// Load fetches all notices and partitions them.
func (s *Service) Load(ctx context.Context) (*Groups, error) {
	entries, err := s.api.Notices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load notices")
	}
	groups := Partition(entries)
	return &groups, nil
}

// Partition splits notices by type, case-insensitively.
func Partition(entries []backend.Notice) Groups {
	var groups Groups
	for _, entry := range entries {
		kind := strings.ToLower(entry.NoticeType)
		switch {
		case kind == backend.NoticeTypeOffer:
			groups.Offers = append(groups.Offers, entry)
		case strings.Contains(kind, "price"):
			groups.PriceChanges = append(groups.PriceChanges, entry)
		default:
			groups.General = append(groups.General, entry)
		}
	}
	return groups
}

// Create posts a new notice after checking the type is one the backend
// accepts.
func (s *Service) Create(ctx context.Context, message, noticeType string) (*backend.Notice, error) {
	if err := validate(message, noticeType); err != nil {
		return nil, err
	}
	notice, err := s.api.CreateNotice(ctx, backend.NoticeInput{Message: message, NoticeType: noticeType})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to create the notice")
	}
	return notice, nil
}

// Update replaces an existing notice.
func (s *Service) Update(ctx context.Context, id, message, noticeType string) (*backend.Notice, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notice id required")
	}
	if err := validate(message, noticeType); err != nil {
		return nil, err
	}
	notice, err := s.api.UpdateNotice(ctx, id, backend.NoticeInput{Message: message, NoticeType: noticeType})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to update the notice")
	}
	return notice, nil
}

// Delete removes a notice.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "notice id required")
	}
	if err := s.api.DeleteNotice(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to delete the notice")
	}
	return nil
}

func validate(message, noticeType string) error {
	if strings.TrimSpace(message) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "a message is required")
	}
	switch strings.ToLower(noticeType) {
	case backend.NoticeTypeOffer, backend.NoticeTypeNotice, backend.NoticeTypePriceChange:
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "notice type must be offer, notice or price change")
}
