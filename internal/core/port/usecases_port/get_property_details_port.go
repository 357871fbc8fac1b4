package usecases_port

import (
	"context"

	"real-estate-service/internal/core/domain"
)

// Execute возвращает nil, nil если объекта нет.
type GetPropertyDetailsUseCasePort interface {
	Execute(ctx context.Context, propertyID int64, req domain.RequestInfo) (*domain.PropertyDetailsView, error)
}
