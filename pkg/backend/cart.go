package backend

import (
	"context"
	"encoding/json"
	"fmt"
)

// Cart fetches the caller's active cart. The backend sometimes answers with
// a single cart object and sometimes with a one-element array; this is a
// known quirk that is normalized here rather than fixed silently.
func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var raw json.RawMessage
	if err := c.get(ctx, pathCart, nil, &raw); err != nil {
		return nil, err
	}
	return normalizeCart(raw)
}

func normalizeCart(raw json.RawMessage) (*Cart, error) {
	trimmed := firstNonSpace(raw)
	if trimmed == 0 {
		return &Cart{}, nil
	}
	if trimmed == '[' {
		var carts []Cart
		if err := json.Unmarshal(raw, &carts); err != nil {
			return nil, fmt.Errorf("decoding cart list: %w", err)
		}
		if len(carts) == 0 {
			return &Cart{}, nil
		}
		return &carts[0], nil
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	return &cart, nil
}

func firstNonSpace(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}

// AddCartItem puts a product into the cart.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (*CartItem, error) {
	payload := map[string]any{"jewelry_item_id": productID, "quantity": quantity}
	var out CartItem
	if err := c.post(ctx, pathCartItems, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCartItem patches the quantity of a single line item.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*CartItem, error) {
	payload := map[string]int{"quantity": quantity}
	var out CartItem
	if err := c.patch(ctx, pathCartItems+itemID+"/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCartItem removes a line item.
func (c *Client) DeleteCartItem(ctx context.Context, itemID string) error {
	return c.delete(ctx, pathCartItems+itemID+"/")
}
