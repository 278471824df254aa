package client

import (
	"fmt"
	"strconv"
	"strings"
)

// ListQuery describes one page of a list request: which fields to pull,
// an optional since-id filter, and the limit/offset window. The remote
// API expresses field selection and filtering through a single "fields"
// query parameter with its own grammar, e.g.
//
//	fields=fields                     all fields
//	fields=name,label                 named fields only
//	fields=fields,id:(>"1000")        all fields, ids above 1000
//	fields=fields,created_date:<      all fields, sorted ascending
type ListQuery struct {
	Fields   []string
	SinceID  int64
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

// SinceFilter renders the strictly-greater id clause of the fields
// grammar.
func SinceFilter(sinceID int64) string {
	return fmt.Sprintf("id:(>\"%d\")", sinceID)
}

// FieldsParam renders the fields parameter value. An empty field list
// selects everything.
func (q ListQuery) FieldsParam() string {
	fields := q.Fields
	if len(fields) == 0 {
		fields = []string{"fields"}
	}

	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, fields...)

	if q.SinceID > 0 {
		parts = append(parts, SinceFilter(q.SinceID))
	}

	if len(q.SortBy) > 0 {
		marker := "<"
		if q.SortDesc {
			marker = ">"
		}
		parts = append(parts, q.SortBy+":"+marker)
	}

	return strings.Join(parts, ",")
}

// Values renders the query as request parameters.
func (q ListQuery) Values() map[string]string {
	values := map[string]string{
		"fields": q.FieldsParam(),
	}

	if q.Limit > 0 {
		values["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Offset > 0 {
		values["offset"] = strconv.Itoa(q.Offset)
	}

	return values
}
