package models_test

import (
	"testing"

	"github.com/catalogkit/catalog-admin-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		size          int
		total         int64
		expectedPages int
		expectedFirst bool
		expectedLast  bool
	}{
		{"Single Full Page", 0, 10, 10, 1, true, true},
		{"Partial Last Page", 2, 10, 25, 3, false, true},
		{"Middle Page", 1, 10, 25, 3, false, false},
		{"Empty Result", 0, 10, 0, 0, true, true},
		{"Page Past The End", 5, 10, 25, 3, false, true},
		{"Exact Multiple", 1, 5, 10, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := models.NewPage([]int{}, tt.page, tt.size, tt.total)

			assert.Equal(t, tt.expectedPages, page.TotalPages)
			assert.Equal(t, tt.expectedFirst, page.First)
			assert.Equal(t, tt.expectedLast, page.Last)
			assert.Equal(t, tt.total, page.TotalElements)
			assert.Equal(t, tt.page, page.Number)
		})
	}
}
