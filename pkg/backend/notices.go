package backend

import "context"

// Notices lists all broadcast messages.
func (c *Client) Notices(ctx context.Context) ([]Notice, error) {
	var out []Notice
	if err := c.get(ctx, pathNotices, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateNotice publishes a broadcast message (owner only).
func (c *Client) CreateNotice(ctx context.Context, input NoticeInput) (*Notice, error) {
	var out Notice
	if err := c.post(ctx, pathNotices, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNotice replaces a notice's message and type (owner only).
func (c *Client) UpdateNotice(ctx context.Context, id string, input NoticeInput) (*Notice, error) {
	var out Notice
	if err := c.put(ctx, pathNotices+id+"/", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNotice removes a notice (owner only).
func (c *Client) DeleteNotice(ctx context.Context, id string) error {
	return c.delete(ctx, pathNotices+id+"/")
}
