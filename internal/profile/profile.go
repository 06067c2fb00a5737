// Package profile covers the account page: profile details, the owner
// check that reveals the console link, and the contact form.
package profile

import (
	"context"
	"strings"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
)

// API is the slice of the backend client the account page needs.
type API interface {
	Profile(ctx context.Context) (*backend.Profile, error)
	UpdateProfile(ctx context.Context, profile backend.Profile) (*backend.Profile, error)
	Role(ctx context.Context) (string, error)
	SendEmail(ctx context.Context, msg backend.EmailMessage) error
}

type Service struct {
	api API
}

func NewService(api API) (*Service, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile backend client required")
	}
	return &Service{api: api}, nil
}

// Get fetches the caller's profile.
func (s *Service) Get(ctx context.Context) (*backend.Profile, error) {
	profile, err := s.api.Profile(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load your profile")
	}
	return profile, nil
}

// Update saves profile details. Blank fields are pruned so the backend
// never overwrites stored values with empty strings.
func (s *Service) Update(ctx context.Context, input backend.Profile) (*backend.Profile, error) {
	pruned := backend.Profile{
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		DateOfBirth: strings.TrimSpace(input.DateOfBirth),
		Bio:         strings.TrimSpace(input.Bio),
	}
	if pruned == (backend.Profile{}) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	profile, err := s.api.UpdateProfile(ctx, pruned)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to update your profile")
	}
	return profile, nil
}

// IsOwner reports whether the account page should surface the console
// link. Lookup failures read as not-owner; the console itself re-checks.
func (s *Service) IsOwner(ctx context.Context) bool {
	role, err := s.api.Role(ctx)
	if err != nil {
		return false
	}
	return strings.EqualFold(role, "owner")
}

// SendContactEmail relays the contact form through the backend.
func (s *Service) SendContactEmail(ctx context.Context, msg backend.EmailMessage) error {
	if strings.TrimSpace(msg.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "an email address is required")
	}
	if strings.TrimSpace(msg.Message) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "a message is required")
	}
	if err := s.api.SendEmail(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to send your message")
	}
	return nil
}
