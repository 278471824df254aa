package client

import (
	"context"
	"fmt"

	"github.com/formlift-io/iform/internal/models"
)

func (c *Client) profilesURL() string {
	return fmt.Sprintf("%s/profiles", c.cfg.APIURL())
}

// ListProfiles returns every profile visible to the client credentials.
func (c *Client) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return listAll[models.Profile](ctx, c, c.profilesURL(), ListQuery{}, defaultPageLimit)
}

// GetProfile returns a single profile by id.
func (c *Client) GetProfile(ctx context.Context, profileID int64) (*models.Profile, error) {
	var profile models.Profile
	url := fmt.Sprintf("%s/%d", c.profilesURL(), profileID)
	if err := c.invoke(ctx, "GET", url, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
