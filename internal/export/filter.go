package export

import (
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/formlift-io/iform/internal/models"
)

// FilterRecords runs a jq expression over each record and keeps the
// emitted values. An expression may drop a record (empty output), pass it
// through (`.`), or reshape it (`{id: .id, name: .observer}`). Emitted
// values must be objects.
func FilterRecords(records []models.Record, expression string) ([]models.Record, error) {

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	var filtered []models.Record

	for _, record := range records {

		iter := code.Run(map[string]any(record))

		for {
			value, ok := iter.Next()
			if !ok {
				break
			}

			if err, isErr := value.(error); isErr {
				return nil, fmt.Errorf("filter failed on record %d: %w", record.ID(), err)
			}

			// jq booleans act as a predicate: true keeps the
			// record as-is, false drops it.
			if keep, isBool := value.(bool); isBool {
				if keep {
					filtered = append(filtered, record)
				}
				continue
			}

			object, isObject := value.(map[string]any)
			if !isObject {
				return nil, fmt.Errorf("filter must emit objects or booleans, got %T", value)
			}

			filtered = append(filtered, models.Record(object))
		}
	}

	return filtered, nil
}
