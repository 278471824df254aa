// Package export reshapes API rows into tabular results: a Table with a
// stable column order, writable as CSV, JSON or YAML, with an optional
// jq-style row filter.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/formlift-io/iform/internal/models"
)

// Table is the tabular form of a list response.
type Table struct {
	Columns []string
	Rows    [][]string
}

// FromRecords builds a table from record field maps. Columns are the
// union of keys across all records, sorted, with id always first. Missing
// values render empty.
func FromRecords(records []models.Record) *Table {

	seen := make(map[string]bool)
	for _, record := range records {
		for key := range record {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		if key == "id" {
			continue
		}
		columns = append(columns, key)
	}
	sort.Strings(columns)

	if seen["id"] {
		columns = append([]string{"id"}, columns...)
	}

	table := &Table{Columns: columns}

	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = formatCell(record[column])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// FromMaps builds a table from generic row maps, e.g. gojq output.
func FromMaps(rows []map[string]any) *Table {
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.Record(row))
	}
	return FromRecords(records)
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers arrive as float64; render integral values
		// without the trailing .0 the API never sent.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// maps rebuilds row maps from the table, for structured output formats.
func (t *Table) maps() []map[string]string {
	rows := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]string, len(t.Columns))
		for i, column := range t.Columns {
			m[column] = row[i]
		}
		rows = append(rows, m)
	}
	return rows
}

// WriteJSON writes the table as an array of objects.
func (t *Table) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(t.maps())
}

// WriteYAML writes the table as a YAML sequence of mappings.
func (t *Table) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(t.maps())
}

// Write dispatches on the output format name.
func (t *Table) Write(w io.Writer, format string) error {
	switch format {
	case "", "csv":
		return t.WriteCSV(w)
	case "json":
		return t.WriteJSON(w)
	case "yaml", "yml":
		return t.WriteYAML(w)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
