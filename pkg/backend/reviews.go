package backend

import (
	"context"
	"net/url"
)

// Reviews lists reviews, optionally filtered to a single product.
func (c *Client) Reviews(ctx context.Context, productID string) ([]Review, error) {
	var query url.Values
	if productID != "" {
		query = url.Values{"product_id": []string{productID}}
	}
	var out []Review
	if err := c.get(ctx, pathReviews, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview submits a review and returns the server-confirmed object.
func (c *Client) CreateReview(ctx context.Context, input ReviewInput) (*Review, error) {
	var out Review
	if err := c.post(ctx, pathReviews, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
