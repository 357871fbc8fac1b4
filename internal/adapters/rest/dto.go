package rest

import (
	"time"

	"real-estate-service/internal/core/domain"
)

// --- Запросы ---

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type InitialTraceRequest struct {
	Name string  `json:"name"`
	Tax  float64 `json:"tax"`
}

type CreatePropertyRequest struct {
	Name         string               `json:"name"`
	Address      *AddressDTO          `json:"address"`
	Price        float64              `json:"price"`
	CodeInternal string               `json:"codeInternal"`
	Year         *int16               `json:"year"`
	OwnerID      int64                `json:"ownerId"`
	InitialTrace *InitialTraceRequest `json:"initialTrace,omitempty"`
}

type UpdatePropertyRequest struct {
	Name         string      `json:"name"`
	Address      *AddressDTO `json:"address"`
	Price        float64     `json:"price"`
	CodeInternal string      `json:"codeInternal"`
	Year         *int16      `json:"year"`
	OwnerID      int64       `json:"ownerId"`
}

type ChangePriceRequest struct {
	Price float64 `json:"price"`
}

// --- Ответы ---

type OwnerResponse struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Address  *AddressDTO `json:"address,omitempty"`
	Photo    *string     `json:"photo,omitempty"`
	Birthday *time.Time  `json:"birthday,omitempty"`
}

type ImageResponse struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

type PriceTraceResponse struct {
	ID           int64     `json:"id"`
	DateOfChange time.Time `json:"dateOfChange"`
	Name         string    `json:"name"`
	Value        float64   `json:"value"`
	Tax          float64   `json:"tax"`
}

type PropertyDetailsResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Address      *AddressDTO          `json:"address,omitempty"`
	Price        float64              `json:"price"`
	CodeInternal string               `json:"codeInternal"`
	Year         *int16               `json:"year,omitempty"`
	Owner        OwnerResponse        `json:"owner"`
	Images       []ImageResponse      `json:"images"`
	Traces       []PriceTraceResponse `json:"priceTraces"`
}

type PropertyImageResponse struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	Enabled    bool   `json:"enabled"`
	StoredKey  string `json:"storedKey"`
}

type PropertySummaryResponse struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Address      *AddressDTO `json:"address,omitempty"`
	Price        float64     `json:"price"`
	CodeInternal string      `json:"codeInternal"`
	Year         *int16      `json:"year,omitempty"`
	OwnerID      int64       `json:"ownerId"`
}

type PaginatedPropertiesResponse struct {
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
	Data     []PropertySummaryResponse `json:"data"`
}

type UpdatedResponse struct {
	Updated bool `json:"updated"`
}

// --- Маппинг ---

func addressToDomain(dto *AddressDTO) *domain.Address {
	if dto == nil {
		return nil
	}
	return &domain.Address{
		Street:  dto.Street,
		City:    dto.City,
		State:   dto.State,
		ZipCode: dto.ZipCode,
	}
}

func addressToDTO(a *domain.Address) *AddressDTO {
	if a == nil {
		return nil
	}
	return &AddressDTO{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}

func detailsToResponse(view *domain.PropertyDetailsView) PropertyDetailsResponse {
	resp := PropertyDetailsResponse{
		ID:           view.ID,
		Name:         view.Name,
		Address:      addressToDTO(view.Address),
		Price:        view.Price,
		CodeInternal: view.CodeInternal,
		Year:         view.Year,
		Owner: OwnerResponse{
			ID:       view.Owner.ID,
			Name:     view.Owner.Name,
			Address:  addressToDTO(view.Owner.Address),
			Photo:    view.Owner.Photo,
			Birthday: view.Owner.Birthday,
		},
		Images: make([]ImageResponse, len(view.Images)),
		Traces: make([]PriceTraceResponse, len(view.Traces)),
	}
	for i, img := range view.Images {
		resp.Images[i] = ImageResponse{
			ID:      img.ID,
			URL:     img.URL,
			Enabled: img.Enabled,
		}
	}
	for i, trace := range view.Traces {
		resp.Traces[i] = PriceTraceResponse{
			ID:           trace.ID,
			DateOfChange: trace.DateOfChange,
			Name:         trace.Name,
			Value:        trace.Value,
			Tax:          trace.Tax,
		}
	}
	return resp
}
