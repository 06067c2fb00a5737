package backend

import "context"

// Categories fetches the full category list.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, pathCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Subcategories fetches the full subcategory list.
func (c *Client) Subcategories(ctx context.Context) ([]Subcategory, error) {
	var out []Subcategory
	if err := c.get(ctx, pathSubcategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products fetches the full product list. No pagination contract exists on
// the backend; the whole catalog comes back in one response.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.get(ctx, pathProducts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.get(ctx, pathProducts+id+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory adds a category (owner only).
func (c *Client) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	payload := map[string]string{"name": name, "description": description}
	var out Category
	if err := c.post(ctx, pathCategories, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category (owner only).
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, pathCategories+id+"/")
}

// CreateSubcategory adds a subcategory under a category (owner only).
func (c *Client) CreateSubcategory(ctx context.Context, name, categoryID string) (*Subcategory, error) {
	payload := map[string]string{"name": name, "category": categoryID}
	var out Subcategory
	if err := c.post(ctx, pathSubcategories, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubcategory removes a subcategory (owner only).
func (c *Client) DeleteSubcategory(ctx context.Context, id string) error {
	return c.delete(ctx, pathSubcategories+id+"/")
}

// CreateProduct adds a jewelry item (owner only).
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out Product
	if err := c.post(ctx, pathProducts, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchProduct partially updates a jewelry item (owner only).
func (c *Client) PatchProduct(ctx context.Context, id string, input ProductInput) (*Product, error) {
	var out Product
	if err := c.patch(ctx, pathProducts+id+"/", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a jewelry item (owner only).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, pathProducts+id+"/")
}
