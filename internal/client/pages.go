package client

import (
	"context"
	"fmt"

	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/models"
)

// ErrNotFound is returned by the Find helpers when no resource matches.
var ErrNotFound = fmt.Errorf("not found")

func (c *Client) pagesURL(profileID int64) string {
	return fmt.Sprintf("%s/profiles/%d/pages", c.cfg.APIURL(), profileID)
}

// ListPages returns every page in the profile, walking the offset
// pagination until the server sends a short page.
func (c *Client) ListPages(ctx context.Context, profileID int64) ([]models.Page, error) {
	return listAll[models.Page](ctx, c, c.pagesURL(profileID), ListQuery{}, defaultPageLimit)
}

// GetPage returns one page definition.
func (c *Client) GetPage(ctx context.Context, profileID, pageID int64) (*models.Page, error) {
	var page models.Page
	url := fmt.Sprintf("%s/%d", c.pagesURL(profileID), pageID)
	if err := c.invoke(ctx, "GET", url, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FindPageID resolves a page name or label to its id.
func (c *Client) FindPageID(ctx context.Context, profileID int64, name string) (int64, error) {
	pages, err := c.ListPages(ctx, profileID)
	if err != nil {
		return 0, err
	}

	for _, page := range pages {
		if common.EqualsInsensitive(page.Name, name) || common.EqualsInsensitive(page.Label, name) {
			return page.ID, nil
		}
	}

	return 0, fmt.Errorf("page %q: %w", name, ErrNotFound)
}

// CreatePage creates an empty page with the given label. The platform
// derives the page name from the label.
func (c *Client) CreatePage(ctx context.Context, profileID int64, label string) (int64, error) {
	if len(label) == 0 {
		return 0, fmt.Errorf("page label is required")
	}

	var created struct {
		ID int64 `json:"id"`
	}
	body := map[string]string{"label": label}
	if err := c.invoke(ctx, "POST", c.pagesURL(profileID), nil, body, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// DeletePage removes a page and its records.
func (c *Client) DeletePage(ctx context.Context, profileID, pageID int64) error {
	url := fmt.Sprintf("%s/%d", c.pagesURL(profileID), pageID)
	return c.invoke(ctx, "DELETE", url, nil, nil, nil)
}

// ListElements returns the fields of a page in sort order.
func (c *Client) ListElements(ctx context.Context, profileID, pageID int64) ([]models.PageElement, error) {
	url := fmt.Sprintf("%s/%d/elements", c.pagesURL(profileID), pageID)
	return listAll[models.PageElement](ctx, c, url, ListQuery{}, defaultPageLimit)
}
