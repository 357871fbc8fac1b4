package domain

// Границы пагинации. PageSize жестко ограничен сверху, чтобы не
// перегружать хранилище и не раздувать ответ.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AddressFilters - независимые подстроки для полей адреса, каждая
// опциональна, совпадение регистронезависимое "contains".
type AddressFilters struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// PropertyFilters - чистый дескриптор запроса, без идентичности.
type PropertyFilters struct {
	Address         AddressFilters
	MinPrice        *float64
	MaxPrice        *float64
	Year            *int16
	HasEnabledImage bool

	Page     int
	PageSize int
}

// Normalize приводит пагинацию к допустимым границам.
func (f *PropertyFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// PropertySummary - строка списочной выдачи.
type PropertySummary struct {
	ID           int64
	Name         string
	Address      *Address
	Price        float64
	CodeInternal string
	Year         *int16
	OwnerID      int64
}

// PagedProperties - страница результата плюс общее число совпадений
// до пагинации.
type PagedProperties struct {
	Items    []PropertySummary
	Total    int64
	Page     int
	PageSize int
}
