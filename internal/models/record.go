package models

import "encoding/json"

// Record is one submission against a page. The platform returns records as
// flat JSON objects keyed by element name, so the type stays a map rather
// than a struct. The id key is always present.
type Record map[string]any

// ID returns the record id, or zero when missing. The API encodes ids as
// JSON numbers which unmarshal as float64.
func (r Record) ID() int64 {
	switch v := r["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case json.Number:
		id, _ := v.Int64()
		return id
	}
	return 0
}

// RecordField is one field assignment in a record create/update payload.
type RecordField struct {
	ElementName string `json:"element_name"`
	Value       any    `json:"value"`
}

// NewRecordFields converts an element-name -> value map into the wire
// payload shape.
func NewRecordFields(values map[string]any) []RecordField {
	fields := make([]RecordField, 0, len(values))
	for name, value := range values {
		fields = append(fields, RecordField{ElementName: name, Value: value})
	}
	return fields
}
