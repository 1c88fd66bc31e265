package resource

import (
	"fmt"

	"github.com/spf13/cast"
)

// ListParams is the serialized form of a Query handed to a list endpoint.
type ListParams struct {
	Page    int
	Limit   int
	Sort    string
	Filters map[string]string
}

// Params serializes the query. Empty filters are never included.
func (q Query) Params() (ListParams, error) {
	p := ListParams{
		Page:    q.Page,
		Limit:   q.Limit,
		Sort:    q.Sort,
		Filters: make(map[string]string, len(q.Filters)),
	}
	for _, k := range q.FilterKeys() {
		s, err := cast.ToStringE(q.Filters[k])
		if err != nil {
			return ListParams{}, fmt.Errorf("filter %q: %w", k, err)
		}
		p.Filters[k] = s
	}
	return p, nil
}
