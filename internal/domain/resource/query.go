package resource

import (
	"sort"
	"strings"
)

// Pagination defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinPage      = 1
	MinLimit     = 1
)

// Query is the page/limit/filter/sort tuple that drives a list fetch.
type Query struct {
	Page    int
	Limit   int
	Filters map[string]any
	Sort    string
}

// NewQuery returns a query on page 1 with no filters.
func NewQuery(limit int) Query {
	if limit < MinLimit {
		limit = DefaultLimit
	}
	return Query{Page: DefaultPage, Limit: limit, Filters: map[string]any{}}
}

// Clone returns a deep copy of the filter map so the copy can leave the owner.
func (q Query) Clone() Query {
	filters := make(map[string]any, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return q
}

// WithPage moves to page n. Out of range values are clamped to [1, totalPages]
// when totalPages is known (> 0).
func (q Query) WithPage(n, totalPages int) Query {
	if totalPages > 0 && n > totalPages {
		n = totalPages
	}
	if n < MinPage {
		n = MinPage
	}
	q.Page = n
	return q
}

// WithLimit changes the page size and returns to page 1.
func (q Query) WithLimit(n int) Query {
	if n < MinLimit {
		n = MinLimit
	}
	q.Limit = n
	q.Page = DefaultPage
	return q
}

// WithFilters shallow-merges partial into the filters and returns to page 1.
// Empty values remove the key.
func (q Query) WithFilters(partial map[string]any) Query {
	q = q.Clone()
	for k, v := range partial {
		if IsEmptyFilter(v) {
			delete(q.Filters, k)
			continue
		}
		q.Filters[k] = v
	}
	q.Page = DefaultPage
	return q
}

// WithoutFilters clears every filter and returns to page 1.
func (q Query) WithoutFilters() Query {
	q.Filters = map[string]any{}
	q.Page = DefaultPage
	return q
}

// WithSort sets the sort key and returns to page 1.
func (q Query) WithSort(key string) Query {
	q.Sort = strings.TrimSpace(key)
	q.Page = DefaultPage
	return q
}

// FilterKeys returns the active filter keys in stable order.
func (q Query) FilterKeys() []string {
	keys := make([]string, 0, len(q.Filters))
	for k, v := range q.Filters {
		if !IsEmptyFilter(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// IsEmptyFilter reports whether a filter value counts as absent.
func IsEmptyFilter(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	case *string:
		return s == nil || strings.TrimSpace(*s) == ""
	}
	return false
}
