package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                string
		total               int64
		page, limit         int
		wantPage, wantLimit int
		wantPages           int
		wantOffset          int
	}{
		{"empty", 0, 3, 50, 3, 50, 0, 100},
		{"first page", 120, 1, 50, 1, 50, 3, 0},
		{"last partial page", 120, 3, 50, 3, 50, 3, 100},
		{"past the end", 120, 9, 50, 3, 50, 3, 100},
		{"limit too large", 250, 1, 1000, 1, 100, 3, 0},
		{"limit zero", 5, 1, 0, 1, 1, 5, 0},
		{"negative page", 5, -2, 2, 1, 2, 3, 0},
		{"exact fit", 100, 2, 50, 2, 50, 2, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantPages, p.Pages)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}
