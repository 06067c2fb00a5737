// Package reviews handles product review reads, validated submission and
// the rating aggregates shown on the product page.
package reviews

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/aureliajewels/storefront-api/pkg/backend"
	pkgerrors "github.com/aureliajewels/storefront-api/pkg/errors"
	"github.com/aureliajewels/storefront-api/pkg/logger"
)

// API is the slice of the backend client reviews need.
type API interface {
	Reviews(ctx context.Context, productID string) ([]backend.Review, error)
	CreateReview(ctx context.Context, input backend.ReviewInput) (*backend.Review, error)
}

// TokenSource provides a fresh access token before a write.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSink receives the fresh token so the backend call carries it.
type TokenSink interface {
	SetToken(token string)
}

const submitFallback = "unable to submit the review"

// Service loads and submits reviews for one product. The loaded list is
// append-only: successful submissions append the server echo rather than
// refetching everything.
type Service struct {
	mu      sync.Mutex
	entries []backend.Review

	api    API
	tokens TokenSource
	sink   TokenSink
	logger *logger.Logger
}

func NewService(api API, tokens TokenSource, sink TokenSink, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reviews backend client required")
	}
	if tokens == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reviews token source required")
	}
	return &Service{api: api, tokens: tokens, sink: sink, logger: logg}, nil
}

// Load fetches all reviews for a product.
func (s *Service) Load(ctx context.Context, productID string) ([]backend.Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	entries, err := s.api.Reviews(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unable to load reviews")
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return entries, nil
}

// Entries returns the current review list.
func (s *Service) Entries() []backend.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backend.Review, len(s.entries))
	copy(out, s.entries)
	return out
}

// Submit validates locally, fetches a fresh token, creates the review and
// appends the server echo. Validation failures never reach the network.
func (s *Service) Submit(ctx context.Context, productID string, rating int, comment string) (*backend.Review, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a comment is required")
	}
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "sign in to leave a review")
	}
	if s.sink != nil {
		s.sink.SetToken(token)
	}

	review, err := s.api.CreateReview(ctx, backend.ReviewInput{
		JewelryItem: productID,
		Rating:      rating,
		Comment:     comment,
	})
	if err != nil {
		message := submitFallback
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			message = apiErr.Message(submitFallback)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
	}

	s.mu.Lock()
	s.entries = append(s.entries, *review)
	s.mu.Unlock()
	return review, nil
}

// AverageRating is the arithmetic mean of all ratings, zero when empty.
func AverageRating(entries []backend.Review) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, entry := range entries {
		total += entry.Rating
	}
	return float64(total) / float64(len(entries))
}

// StarCount rounds the mean to the nearest whole star. Rendering only; the
// unrounded mean is what gets displayed as a number.
func StarCount(entries []backend.Review) int {
	return int(math.Round(AverageRating(entries)))
}
