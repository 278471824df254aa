package client

import (
	"context"
	"fmt"

	"github.com/formlift-io/iform/internal/models"
)

func (c *Client) usersURL(profileID int64) string {
	return fmt.Sprintf("%s/profiles/%d/users", c.cfg.APIURL(), profileID)
}

// ListUsers returns every user in the profile.
func (c *Client) ListUsers(ctx context.Context, profileID int64) ([]models.User, error) {
	return listAll[models.User](ctx, c, c.usersURL(profileID), ListQuery{}, defaultPageLimit)
}

// GetUser returns a single user by id.
func (c *Client) GetUser(ctx context.Context, profileID, userID int64) (*models.User, error) {
	var user models.User
	url := fmt.Sprintf("%s/%d", c.usersURL(profileID), userID)
	if err := c.invoke(ctx, "GET", url, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user and returns the new id.
func (c *Client) CreateUser(ctx context.Context, profileID int64, req models.NewUserRequest) (int64, error) {
	if len(req.Username) == 0 || len(req.Password) == 0 {
		return 0, fmt.Errorf("username and password are required")
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := c.invoke(ctx, "POST", c.usersURL(profileID), nil, req, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// DeleteUser removes a user from the profile.
func (c *Client) DeleteUser(ctx context.Context, profileID, userID int64) error {
	url := fmt.Sprintf("%s/%d", c.usersURL(profileID), userID)
	return c.invoke(ctx, "DELETE", url, nil, nil, nil)
}
