package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{Page: 0, Size: 0}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)

	p = Pagination{Page: -3, Size: 500}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.Size)

	p = Pagination{Page: 4, Size: 25}.Normalize()
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 25, p.Size)
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 30, Pagination{Page: 4, Size: 10}.Offset())
}

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(Pagination{Page: 2, Size: 10}, 35)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 35, meta.TotalCount)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	assert.Equal(t, 3, meta.NextPage)
	assert.Equal(t, 1, meta.PrevPage)
}

func TestNewPageMetaBoundaries(t *testing.T) {
	first := NewPageMeta(Pagination{Page: 1, Size: 10}, 30)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := NewPageMeta(Pagination{Page: 3, Size: 10}, 30)
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	empty := NewPageMeta(Pagination{Page: 1, Size: 10}, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
