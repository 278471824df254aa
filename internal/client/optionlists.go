package client

import (
	"context"
	"fmt"

	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/models"
)

// batchLimit is the API's cap on elements per batch create request.
const batchLimit = 100

func (c *Client) optionListsURL(profileID int64) string {
	return fmt.Sprintf("%s/profiles/%d/optionlists", c.cfg.APIURL(), profileID)
}

func (c *Client) optionsURL(profileID, listID int64) string {
	return fmt.Sprintf("%s/%d/options", c.optionListsURL(profileID), listID)
}

// ListOptionLists returns every option list in the profile.
func (c *Client) ListOptionLists(ctx context.Context, profileID int64) ([]models.OptionList, error) {
	return listAll[models.OptionList](ctx, c, c.optionListsURL(profileID), ListQuery{}, defaultPageLimit)
}

// GetOptionList returns one option list by id.
func (c *Client) GetOptionList(ctx context.Context, profileID, listID int64) (*models.OptionList, error) {
	var list models.OptionList
	url := fmt.Sprintf("%s/%d", c.optionListsURL(profileID), listID)
	if err := c.invoke(ctx, "GET", url, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// FindOptionListID resolves an option list name to its id.
func (c *Client) FindOptionListID(ctx context.Context, profileID int64, name string) (int64, error) {
	lists, err := c.ListOptionLists(ctx, profileID)
	if err != nil {
		return 0, err
	}

	for _, list := range lists {
		if common.EqualsInsensitive(list.Name, name) {
			return list.ID, nil
		}
	}

	return 0, fmt.Errorf("option list %q: %w", name, ErrNotFound)
}

// CreateOptionList creates an empty option list and returns its id.
func (c *Client) CreateOptionList(ctx context.Context, profileID int64, name string) (int64, error) {
	if len(name) == 0 {
		return 0, fmt.Errorf("option list name is required")
	}

	var created struct {
		ID int64 `json:"id"`
	}
	body := map[string]string{"name": name}
	if err := c.invoke(ctx, "POST", c.optionListsURL(profileID), nil, body, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// DeleteOptionList removes an option list.
func (c *Client) DeleteOptionList(ctx context.Context, profileID, listID int64) error {
	url := fmt.Sprintf("%s/%d", c.optionListsURL(profileID), listID)
	return c.invoke(ctx, "DELETE", url, nil, nil, nil)
}

// ListOptions returns every element of an option list.
func (c *Client) ListOptions(ctx context.Context, profileID, listID int64) ([]models.Option, error) {
	return listAll[models.Option](ctx, c, c.optionsURL(profileID, listID), ListQuery{}, defaultPageLimit)
}

// CreateOptions adds elements to an option list, chunking batches at the
// API's 100-element cap, and returns the created ids.
func (c *Client) CreateOptions(ctx context.Context, profileID, listID int64, options []models.Option) ([]int64, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options to create")
	}

	var ids []int64

	for _, batch := range common.Chunk(options, batchLimit) {
		var created []struct {
			ID int64 `json:"id"`
		}
		if err := c.invoke(ctx, "POST", c.optionsURL(profileID, listID), nil, batch, &created); err != nil {
			return ids, err
		}
		for _, row := range created {
			ids = append(ids, row.ID)
		}
	}

	return ids, nil
}

// UpdateOption overwrites one option list element.
func (c *Client) UpdateOption(ctx context.Context, profileID, listID int64, option models.Option) error {
	if option.ID == 0 {
		return fmt.Errorf("option id is required")
	}

	url := fmt.Sprintf("%s/%d", c.optionsURL(profileID, listID), option.ID)
	return c.invoke(ctx, "PUT", url, nil, option, nil)
}

// DeleteOptions removes the named elements one by one.
func (c *Client) DeleteOptions(ctx context.Context, profileID, listID int64, optionIDs []int64) error {
	for _, id := range optionIDs {
		url := fmt.Sprintf("%s/%d", c.optionsURL(profileID, listID), id)
		if err := c.invoke(ctx, "DELETE", url, nil, nil, nil); err != nil {
			return fmt.Errorf("failed to delete option %d: %w", id, err)
		}
	}
	return nil
}

// PurgeOptions removes every element of an option list using the bulk
// fields grammar, returning the deleted count.
func (c *Client) PurgeOptions(ctx context.Context, profileID, listID int64) (int, error) {
	query := map[string]string{"fields": SinceFilter(-1)}

	var deleted []struct {
		ID int64 `json:"id"`
	}
	if err := c.invoke(ctx, "DELETE", c.optionsURL(profileID, listID), query, nil, &deleted); err != nil {
		return 0, err
	}
	return len(deleted), nil
}
