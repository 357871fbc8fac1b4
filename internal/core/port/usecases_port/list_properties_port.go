package usecases_port

import (
	"context"

	"real-estate-service/internal/core/domain"
)

type ListPropertiesUseCasePort interface {
	Execute(ctx context.Context, filters domain.PropertyFilters) (*domain.PagedProperties, error)
}
