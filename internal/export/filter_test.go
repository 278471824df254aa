package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlift-io/iform/internal/models"
)

func TestFilterRecordsPredicate(t *testing.T) {
	records := []models.Record{
		{"id": float64(1), "count": float64(3)},
		{"id": float64(2), "count": float64(10)},
		{"id": float64(3), "count": float64(7)},
	}

	filtered, err := FilterRecords(records, ".count > 5")
	require.NoError(t, err)

	require.Len(t, filtered, 2)
	assert.Equal(t, int64(2), filtered[0].ID())
	assert.Equal(t, int64(3), filtered[1].ID())
}

func TestFilterRecordsReshape(t *testing.T) {
	records := []models.Record{
		{"id": float64(1), "observer": "jane", "notes": "windy"},
	}

	filtered, err := FilterRecords(records, "{id: .id, who: .observer}")
	require.NoError(t, err)

	require.Len(t, filtered, 1)
	assert.Equal(t, "jane", filtered[0]["who"])
	assert.NotContains(t, filtered[0], "notes")
}

func TestFilterRecordsInvalidExpression(t *testing.T) {
	_, err := FilterRecords(nil, "{{{")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")
}

func TestFilterRecordsRejectsScalarOutput(t *testing.T) {
	records := []models.Record{{"id": float64(1), "observer": "jane"}}

	_, err := FilterRecords(records, ".observer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must emit objects or booleans")
}
