package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 45, TotalPages(45, 1))
	assert.Equal(t, 3, TotalPages(3, 0))
}

func TestPageMeta_Normalize(t *testing.T) {
	m := PageMeta{Page: 0, Limit: 0, TotalItems: -4}.Normalize()
	assert.Equal(t, PageMeta{Page: 1, Limit: 1, TotalItems: 0, TotalPages: 1}, m)

	m = PageMeta{Page: 3, Limit: 10, TotalItems: 45, TotalPages: 99}.Normalize()
	assert.Equal(t, 5, m.TotalPages)
	assert.True(t, m.HasNext())
	assert.True(t, m.HasPrev())

	last := PageMeta{Page: 5, Limit: 10, TotalItems: 45}.Normalize()
	assert.False(t, last.HasNext())
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, 21, Ordinal(0, 3, 10))
	assert.Equal(t, 10, Ordinal(9, 1, 10))
	assert.Equal(t, 1, Ordinal(0, 1, 25))
}
