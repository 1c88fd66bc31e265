package listresource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"adminconsole/internal/domain/resource"
)

var (
	// ErrUnrecognizedEnvelope is returned when no item list can be located in a response.
	ErrUnrecognizedEnvelope = errors.New("unrecognized response envelope")
	// ErrUnsuccessful is returned for bodies that carry success=false.
	ErrUnsuccessful = errors.New("backend reported success=false")
)

var (
	defaultItemKeys = []string{"items", "docs", "results", "rows", "records"}
	defaultMetaKeys = []string{"meta", "pagination", "pageInfo"}

	pageKeys       = []string{"page", "currentPage", "current_page"}
	limitKeys      = []string{"limit", "perPage", "per_page", "pageSize"}
	totalItemKeys  = []string{"totalItems", "total", "totalDocs", "total_items", "count"}
	totalPagesKeys = []string{"totalPages", "pages", "total_pages", "lastPage"}
)

// NormalizePage turns any supported list envelope into a PageResult:
//
//	{success, data: {items, meta}}
//	{success, data: [...], meta}
//	[...] with meta supplied out of band in reply.Meta
//
// Missing pagination is derived from q. Derived totals are not marked as known.
func NormalizePage(reply *Reply, q resource.Query, shape Shape) (resource.PageResult, error) {
	if reply == nil {
		return resource.PageResult{}, fmt.Errorf("%w: empty reply", ErrUnrecognizedEnvelope)
	}
	body := bytes.TrimSpace(reply.Body)
	if !gjson.ValidBytes(body) {
		return resource.PageResult{}, fmt.Errorf("%w: invalid JSON", ErrUnrecognizedEnvelope)
	}
	root := gjson.ParseBytes(body)
	if s := root.Get("success"); s.Exists() && s.Type == gjson.False {
		return resource.PageResult{}, ErrUnsuccessful
	}

	items, metaSrc, ok := locate(root, shape)
	if !ok {
		return resource.PageResult{}, ErrUnrecognizedEnvelope
	}

	records, err := decodeItems(items, idField(shape))
	if err != nil {
		return resource.PageResult{}, err
	}

	meta, found, totals := parseMeta(metaSrc)
	if !totals && reply.Meta != nil {
		meta, found, totals = *reply.Meta, true, true
	}
	if !found {
		meta = resource.PageMeta{
			Page:       q.Page,
			Limit:      q.Limit,
			TotalItems: (q.Page-1)*q.Limit + len(records),
		}
	}
	if meta.Page == 0 {
		meta.Page = q.Page
	}
	if meta.Limit == 0 {
		meta.Limit = q.Limit
	}

	return resource.PageResult{Items: records, Meta: meta.Normalize(), TotalsKnown: totals}, nil
}

// ExtractRecord reads a single record from a detail response, unwrapping a data
// envelope when present.
func ExtractRecord(reply *Reply, shape Shape) (resource.Resource, error) {
	if reply == nil || !gjson.ValidBytes(reply.Body) {
		return resource.Resource{}, fmt.Errorf("%w: invalid detail body", ErrUnrecognizedEnvelope)
	}
	root := gjson.ParseBytes(reply.Body)
	if s := root.Get("success"); s.Exists() && s.Type == gjson.False {
		return resource.Resource{}, ErrUnsuccessful
	}
	obj := root
	if data := root.Get("data"); data.IsObject() {
		obj = data
	}
	if !obj.IsObject() {
		return resource.Resource{}, fmt.Errorf("%w: detail is not an object", ErrUnrecognizedEnvelope)
	}
	return decodeRecord(obj, idField(shape))
}

// locate finds the item array and the object holding pagination fields.
func locate(root gjson.Result, shape Shape) (items, meta gjson.Result, ok bool) {
	if root.IsArray() {
		return root, gjson.Result{}, true
	}
	if !root.IsObject() {
		return gjson.Result{}, gjson.Result{}, false
	}

	itemKeys := withHint(shape.ItemsKey, defaultItemKeys)
	metaKeys := withHint(shape.MetaKey, defaultMetaKeys)

	data := root.Get("data")
	switch {
	case data.IsArray():
		return data, firstObject(root, metaKeys, root), true
	case data.IsObject():
		if arr := firstArray(data, itemKeys); arr.Exists() {
			m := firstObject(data, metaKeys, gjson.Result{})
			if !m.Exists() {
				m = firstObject(root, metaKeys, data)
			}
			return arr, m, true
		}
	}
	if arr := firstArray(root, itemKeys); arr.Exists() {
		return arr, firstObject(root, metaKeys, root), true
	}
	return gjson.Result{}, gjson.Result{}, false
}

// parseMeta reports whether any pagination field was present and, separately,
// whether a total was.
func parseMeta(obj gjson.Result) (meta resource.PageMeta, found, totals bool) {
	if !obj.IsObject() {
		return meta, false, false
	}
	if v, ok := intAt(obj, pageKeys); ok {
		meta.Page, found = v, true
	}
	if v, ok := intAt(obj, limitKeys); ok {
		meta.Limit, found = v, true
	}
	if v, ok := intAt(obj, totalItemKeys); ok {
		meta.TotalItems, found, totals = v, true, true
	}
	if v, ok := intAt(obj, totalPagesKeys); ok {
		meta.TotalPages, found, totals = v, true, true
	}
	return meta, found, totals
}

func decodeItems(items gjson.Result, idField string) ([]resource.Resource, error) {
	out := make([]resource.Resource, 0, len(items.Array()))
	for i, it := range items.Array() {
		if !it.IsObject() {
			return nil, fmt.Errorf("%w: item %d is not an object", ErrUnrecognizedEnvelope, i)
		}
		r, err := decodeRecord(it, idField)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func decodeRecord(obj gjson.Result, idField string) (resource.Resource, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(obj.Raw)))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return resource.Resource{}, fmt.Errorf("decode record: %w", err)
	}
	r := resource.New(fields, idField)
	if r.ID == "" && idField == "id" {
		r = resource.New(fields, "_id")
	}
	return r, nil
}

func idField(shape Shape) string {
	if shape.IDField != "" {
		return shape.IDField
	}
	return "id"
}

func withHint(hint string, defaults []string) []string {
	if hint == "" {
		return defaults
	}
	return append([]string{hint}, defaults...)
}

func firstArray(obj gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		if v := obj.Get(gjson.Escape(k)); v.IsArray() {
			return v
		}
	}
	return gjson.Result{}
}

// firstObject returns the first object under keys, or fallback when none is
// present. The fallback covers envelopes that keep pagination fields flat.
func firstObject(obj gjson.Result, keys []string, fallback gjson.Result) gjson.Result {
	for _, k := range keys {
		if v := obj.Get(gjson.Escape(k)); v.IsObject() {
			return v
		}
	}
	return fallback
}

func intAt(obj gjson.Result, keys []string) (int, bool) {
	for _, k := range keys {
		v := obj.Get(gjson.Escape(k))
		switch v.Type {
		case gjson.Number:
			return int(v.Int()), true
		case gjson.String:
			if n := v.Int(); n != 0 || v.Str == "0" {
				return int(n), true
			}
		}
	}
	return 0, false
}
