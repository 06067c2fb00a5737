package backend

import "context"

// Role returns the server-asserted authorization label for the caller.
func (c *Client) Role(ctx context.Context) (string, error) {
	var out struct {
		Role string `json:"role"`
	}
	if err := c.get(ctx, pathRole, nil, &out); err != nil {
		return "", err
	}
	return out.Role, nil
}

// Profile fetches the caller's profile. The backend nests the fields under
// a "user" key.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out struct {
		User Profile `json:"user"`
	}
	if err := c.get(ctx, pathProfile, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile sends the provided (already-pruned) profile fields.
func (c *Client) UpdateProfile(ctx context.Context, profile Profile) (*Profile, error) {
	var out struct {
		User Profile `json:"user"`
	}
	if err := c.put(ctx, pathProfile, profile, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// SendEmail relays a contact-form message through the backend.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage) error {
	return c.post(ctx, pathSendEmail, msg, nil)
}
