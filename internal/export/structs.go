package export

import (
	"encoding/json"
	"fmt"

	"github.com/formlift-io/iform/internal/models"
)

// FromStructs builds a table from a slice of typed API models by going
// through their JSON form, so columns match the wire field names.
func FromStructs[T any](items []T) (*Table, error) {

	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rows: %w", err)
	}

	var rows []models.Record
	if err := json.Unmarshal(encoded, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}

	return FromRecords(rows), nil
}
