package omen

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams represents common query parameters accepted by Omen list and
// search endpoints.
type QueryParams struct {
	// Limit caps the number of returned references.
	Limit int
	// From is the offset into the result set, for paging.
	From int
	// Fields restricts which fields are returned, comma-joined.
	Fields []string
	// OrderBy names the sort field, optionally prefixed with "-" for
	// descending order.
	OrderBy string
	// Filters holds endpoint-specific filter parameters; multi-value
	// filters are comma-joined.
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithLimit sets the result limit.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithFrom sets the paging offset.
func (q *QueryParams) WithFrom(from int) *QueryParams {
	q.From = from

	return q
}

// WithFields sets the returned fields.
func (q *QueryParams) WithFields(fields ...string) *QueryParams {
	q.Fields = fields

	return q
}

// WithFilter adds a filter parameter.
func (q *QueryParams) WithFilter(key string, values ...string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string][]string)
	}

	q.Filters[key] = values

	return q
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.From > 0 {
		values.Set("from", strconv.Itoa(q.From))
	}

	if len(q.Fields) > 0 {
		values.Set("fields", strings.Join(q.Fields, ","))
	}

	if q.OrderBy != "" {
		values.Set("order_by", q.OrderBy)
	}

	for key, filterValues := range q.Filters {
		if len(filterValues) > 0 {
			values.Set(key, strings.Join(filterValues, ","))
		}
	}

	return values
}
