package resource

import (
	"encoding/json"
	"strings"
)

// Resource is an opaque backend record. Only ID is interpreted by the console.
type Resource struct {
	ID     string
	Fields map[string]any
}

// New creates a resource from decoded fields, reading the identifier from idField.
func New(fields map[string]any, idField string) Resource {
	r := Resource{Fields: fields}
	if fields == nil {
		r.Fields = map[string]any{}
	}
	r.ID = stringID(r.Fields[idField])
	return r
}

// Get returns a single field value.
func (r Resource) Get(key string) any {
	return r.Fields[key]
}

// Merge returns a copy of r with other's fields laid on top. The identifier is kept.
func (r Resource) Merge(other Resource) Resource {
	merged := make(map[string]any, len(r.Fields)+len(other.Fields))
	for k, v := range r.Fields {
		merged[k] = v
	}
	for k, v := range other.Fields {
		merged[k] = v
	}
	return Resource{ID: r.ID, Fields: merged}
}

// MarshalJSON renders the record as its raw field set.
func (r Resource) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

func stringID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	default:
		b, err := json.Marshal(id)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}
