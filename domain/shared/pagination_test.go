package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationParamsClamping(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative page", -3, 10, 1, 10},
		{"size capped", 2, 500, 2, MaxPageSize},
		{"in range", 3, 25, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewPaginationParams(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, NewPaginationParams(1, 20).Offset())
	assert.Equal(t, 20, NewPaginationParams(2, 20).Offset())
	assert.Equal(t, 40, NewPaginationParams(5, 10).Offset())
}

func TestNewPageTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		size       int
		wantPages  int
	}{
		{"exact fit", 40, 20, 2},
		{"partial last page", 15, 10, 2},
		{"single page", 5, 20, 1},
		{"empty", 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage([]string{}, tt.totalItems, NewPaginationParams(1, tt.size))
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.totalItems, page.TotalItems)
		})
	}
}
