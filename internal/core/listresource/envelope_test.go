package listresource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminconsole/internal/domain/resource"
)

func TestNormalizePage_SupportedShapes(t *testing.T) {
	q := resource.NewQuery(10).WithPage(2, 0)
	headerMeta := &resource.PageMeta{Page: 2, Limit: 10, TotalItems: 31}

	cases := []struct {
		name     string
		reply    *Reply
		shape    Shape
		wantIDs  []string
		wantMeta resource.PageMeta
		derived  bool
	}{
		{
			name:     "nested data with items and meta",
			reply:    &Reply{StatusCode: 200, Body: []byte(`{"success":true,"data":{"items":[{"id":11},{"id":12}],"meta":{"page":2,"limit":10,"totalItems":12,"totalPages":2}}}`)},
			wantIDs:  []string{"11", "12"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 12, TotalPages: 2},
		},
		{
			name:     "data array with sibling meta",
			reply:    &Reply{StatusCode: 200, Body: []byte(`{"success":true,"data":[{"id":"a"}],"meta":{"currentPage":2,"perPage":10,"total":11}}`)},
			wantIDs:  []string{"a"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 11, TotalPages: 2},
		},
		{
			name:     "flat paginated docs",
			reply:    &Reply{StatusCode: 200, Body: []byte(`{"docs":[{"_id":"64f0"}],"page":2,"limit":10,"totalDocs":25,"totalPages":3}`)},
			wantIDs:  []string{"64f0"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 25, TotalPages: 3},
		},
		{
			name:     "bare array with header meta",
			reply:    &Reply{StatusCode: 200, Body: []byte(`[{"id":1},{"id":2}]`), Meta: headerMeta},
			wantIDs:  []string{"1", "2"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 31, TotalPages: 4},
		},
		{
			name:     "bare array without meta",
			reply:    &Reply{StatusCode: 200, Body: []byte(`[{"id":1},{"id":2},{"id":3}]`)},
			wantIDs:  []string{"1", "2", "3"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 13, TotalPages: 2},
			derived:  true,
		},
		{
			name:     "meta without totals",
			reply:    &Reply{StatusCode: 200, Body: []byte(`{"success":true,"data":[{"id":"a"}],"meta":{"page":2,"limit":10}}`)},
			wantIDs:  []string{"a"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 0, TotalPages: 1},
			derived:  true,
		},
		{
			name:     "body meta without totals falls back to header totals",
			reply:    &Reply{StatusCode: 200, Body: []byte(`{"data":[{"id":"a"}],"meta":{"page":2}}`), Meta: headerMeta},
			wantIDs:  []string{"a"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 31, TotalPages: 4},
		},
		{
			name:     "custom keys",
			reply:    &Reply{StatusCode: 200, Body: []byte(`{"data":{"chapters":[{"slug":"ch-1"}],"paging":{"page":2,"limit":10,"total":11}}}`)},
			shape:    Shape{ItemsKey: "chapters", MetaKey: "paging", IDField: "slug"},
			wantIDs:  []string{"ch-1"},
			wantMeta: resource.PageMeta{Page: 2, Limit: 10, TotalItems: 11, TotalPages: 2},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePage(tc.reply, q, tc.shape)
			require.NoError(t, err)

			ids := make([]string, 0, len(got.Items))
			for _, it := range got.Items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
			assert.Equal(t, tc.wantMeta, got.Meta)
			assert.Equal(t, !tc.derived, got.TotalsKnown)
		})
	}
}

func TestNormalizePage_Rejects(t *testing.T) {
	q := resource.NewQuery(10)
	cases := map[string]*Reply{
		"nil reply":       nil,
		"invalid json":    {StatusCode: 200, Body: []byte(`{"data":`)},
		"no item list":    {StatusCode: 200, Body: []byte(`{"data":{"total":3}}`)},
		"scalar item":     {StatusCode: 200, Body: []byte(`{"items":[1,2]}`)},
		"string envelope": {StatusCode: 200, Body: []byte(`"ok"`)},
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizePage(reply, q, Shape{})
			assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)
		})
	}

	_, err := NormalizePage(&Reply{StatusCode: 200, Body: []byte(`{"success":false,"data":{"items":[]}}`)}, q, Shape{})
	assert.ErrorIs(t, err, ErrUnsuccessful)
}

func TestNormalizePage_KeepsLargeIDsExact(t *testing.T) {
	got, err := NormalizePage(&Reply{StatusCode: 200, Body: []byte(`{"items":[{"id":9007199254740993}]}`)}, resource.NewQuery(10), Shape{})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "9007199254740993", got.Items[0].ID)
}

func TestExtractRecord(t *testing.T) {
	r, err := ExtractRecord(&Reply{StatusCode: 200, Body: []byte(`{"success":true,"data":{"id":4,"title":"Faq"}}`)}, Shape{})
	require.NoError(t, err)
	assert.Equal(t, "4", r.ID)
	assert.Equal(t, "Faq", r.Get("title"))

	r, err = ExtractRecord(&Reply{StatusCode: 200, Body: []byte(`{"_id":"abc","name":"x"}`)}, Shape{})
	require.NoError(t, err)
	assert.Equal(t, "abc", r.ID)

	_, err = ExtractRecord(&Reply{StatusCode: 200, Body: []byte(`[1]`)}, Shape{})
	assert.ErrorIs(t, err, ErrUnrecognizedEnvelope)

	_, err = ExtractRecord(&Reply{StatusCode: 200, Body: []byte(`{"success":false}`)}, Shape{})
	assert.ErrorIs(t, err, ErrUnsuccessful)
}
