package client

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/formlift-io/iform/internal/common"
	"github.com/formlift-io/iform/internal/models"
)

func (c *Client) recordsURL(profileID, pageID int64) string {
	return fmt.Sprintf("%s/profiles/%d/pages/%d/records", c.cfg.APIURL(), profileID, pageID)
}

// ListRecords returns one window of records matching the query. Callers
// wanting the full set should use FetchAllRecords.
func (c *Client) ListRecords(ctx context.Context, profileID, pageID int64, query ListQuery) ([]models.Record, error) {
	if query.Limit == 0 {
		query.Limit = recordPageLimit
	}

	var records []models.Record
	if err := c.invoke(ctx, "GET", c.recordsURL(profileID, pageID), query.Values(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchAllRecords pulls every record with id strictly greater than
// sinceID, in batches, advancing the since-id watermark to the highest id
// of each batch. A short batch ends the loop; an empty page yields an
// empty result rather than an error.
func (c *Client) FetchAllRecords(ctx context.Context, profileID, pageID int64, sinceID int64, fields ...string) ([]models.Record, error) {

	var all []models.Record

	for {
		batch, err := c.ListRecords(ctx, profileID, pageID, ListQuery{
			Fields:  fields,
			SinceID: sinceID,
			Limit:   recordPageLimit,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, batch...)

		for _, record := range batch {
			if id := record.ID(); id > sinceID {
				sinceID = id
			}
		}

		if len(batch) < recordPageLimit {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"page":    pageID,
		"records": len(all),
	}).Debug("Fetched records")

	return all, nil
}

// GetRecord returns a single record by id.
func (c *Client) GetRecord(ctx context.Context, profileID, pageID, recordID int64) (models.Record, error) {
	var record models.Record
	url := fmt.Sprintf("%s/%d", c.recordsURL(profileID, pageID), recordID)
	if err := c.invoke(ctx, "GET", url, nil, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateRecord submits one record and returns its new id.
func (c *Client) CreateRecord(ctx context.Context, profileID, pageID int64, values map[string]any) (int64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("record has no fields")
	}

	var created struct {
		ID int64 `json:"id"`
	}
	body := map[string]any{"fields": models.NewRecordFields(values)}
	if err := c.invoke(ctx, "POST", c.recordsURL(profileID, pageID), nil, body, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// CreateRecords submits a batch of records and returns the new ids. The
// API accepts at most 100 records per request, so larger batches are
// chunked.
func (c *Client) CreateRecords(ctx context.Context, profileID, pageID int64, records []map[string]any) ([]int64, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to create")
	}

	var ids []int64

	for _, batch := range common.Chunk(records, batchLimit) {

		payload := make([]map[string]any, 0, len(batch))
		for _, values := range batch {
			payload = append(payload, map[string]any{"fields": models.NewRecordFields(values)})
		}

		var created []struct {
			ID int64 `json:"id"`
		}
		if err := c.invoke(ctx, "POST", c.recordsURL(profileID, pageID), nil, payload, &created); err != nil {
			return ids, err
		}

		for _, row := range created {
			ids = append(ids, row.ID)
		}
	}

	return ids, nil
}

// UpdateRecord overwrites the given fields of an existing record.
func (c *Client) UpdateRecord(ctx context.Context, profileID, pageID, recordID int64, values map[string]any) error {
	if len(values) == 0 {
		return fmt.Errorf("record update has no fields")
	}

	url := fmt.Sprintf("%s/%d", c.recordsURL(profileID, pageID), recordID)
	body := map[string]any{"fields": models.NewRecordFields(values)}
	return c.invoke(ctx, "PUT", url, nil, body, nil)
}

// DeleteRecord removes one record.
func (c *Client) DeleteRecord(ctx context.Context, profileID, pageID, recordID int64) error {
	url := fmt.Sprintf("%s/%d", c.recordsURL(profileID, pageID), recordID)
	return c.invoke(ctx, "DELETE", url, nil, nil, nil)
}

// DeleteRecords removes every record with id strictly greater than
// sinceID using the bulk fields grammar, returning the deleted count.
func (c *Client) DeleteRecords(ctx context.Context, profileID, pageID int64, sinceID int64) (int, error) {
	query := map[string]string{"fields": SinceFilter(sinceID)}

	var deleted []struct {
		ID int64 `json:"id"`
	}
	if err := c.invoke(ctx, "DELETE", c.recordsURL(profileID, pageID), query, nil, &deleted); err != nil {
		return 0, err
	}
	return len(deleted), nil
}
