package backend

import "context"

// Orders lists the caller's order history.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.get(ctx, pathOrders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder converts the caller's current cart into an order. The request
// carries no body: the backend derives the order contents from the cart.
func (c *Client) CreateOrder(ctx context.Context) (*Order, error) {
	var out Order
	if err := c.post(ctx, pathOrders, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := c.get(ctx, pathOrders+id+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder cancels a pending order (owner only) and returns the echoed
// order state.
func (c *Client) CancelOrder(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := c.put(ctx, pathOrders+id+"/cancel/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves an order through its lifecycle (owner only).
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	payload := map[string]string{"status": status}
	var out Order
	if err := c.put(ctx, pathAdminOrders+id+"/update_status/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
