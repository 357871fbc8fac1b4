package postgres

import (
	"testing"

	"real-estate-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplyFilters_Empty(t *testing.T) {
	where, args := applyFilters(domain.PropertyFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestApplyFilters_AddressSubstringsCombineWithAnd(t *testing.T) {
	where, args := applyFilters(domain.PropertyFilters{
		Address: domain.AddressFilters{
			Street: "Calle",
			City:   "Bogota",
		},
	})

	assert.Equal(t, `WHERE p.street ILIKE $1 ESCAPE '\' AND p.city ILIKE $2 ESCAPE '\'`, where)
	assert.Equal(t, []interface{}{"%Calle%", "%Bogota%"}, args)
}

func TestApplyFilters_ContainsEscapesLikeMetacharacters(t *testing.T) {
	_, args := applyFilters(domain.PropertyFilters{
		Address: domain.AddressFilters{
			Street: `50%_off\street`,
			City:   "Bogota",
		},
	})

	assert.Equal(t, []interface{}{`%50\%\_off\\street%`, "%Bogota%"}, args)
}

func TestApplyFilters_PriceBoundsAndYear(t *testing.T) {
	minPrice := 100.0
	maxPrice := 500.0
	year := int16(1995)

	where, args := applyFilters(domain.PropertyFilters{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Year:     &year,
	})

	assert.Equal(t, "WHERE p.price >= $1 AND p.price <= $2 AND p.year = $3", where)
	assert.Equal(t, []interface{}{100.0, 500.0, int16(1995)}, args)
}

func TestApplyFilters_HasEnabledImageAddsNoArg(t *testing.T) {
	where, args := applyFilters(domain.PropertyFilters{HasEnabledImage: true})

	assert.Equal(t, "WHERE EXISTS (SELECT 1 FROM property_images i WHERE i.property_id = p.id AND i.enabled)", where)
	assert.Empty(t, args)
}

func TestApplyFilters_AllTogetherKeepPlaceholderNumbering(t *testing.T) {
	minPrice := 100.0
	where, args := applyFilters(domain.PropertyFilters{
		Address:         domain.AddressFilters{ZipCode: "110"},
		MinPrice:        &minPrice,
		HasEnabledImage: true,
	})

	assert.Equal(t,
		`WHERE p.zip_code ILIKE $1 ESCAPE '\' AND p.price >= $2 AND EXISTS (SELECT 1 FROM property_images i WHERE i.property_id = p.id AND i.enabled)`,
		where)
	assert.Len(t, args, 2)
}
