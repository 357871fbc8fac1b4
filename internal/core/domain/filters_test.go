package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFilters_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, DefaultPageSize},
		{"negative page", -10, 20, 1, 20},
		{"negative page size", 1, -5, 1, DefaultPageSize},
		{"over the cap", 1, 500, 1, MaxPageSize},
		{"at the cap", 1, 100, 1, 100},
		{"regular", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := PropertyFilters{Page: tt.page, PageSize: tt.pageSize}
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}

func TestAddressString(t *testing.T) {
	a := Address{Street: "Calle 1", City: "Bogota", State: "DC", ZipCode: "110111"}
	assert.Equal(t, "Calle 1, Bogota, DC 110111", a.String())
}
