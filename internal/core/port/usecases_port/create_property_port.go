package usecases_port

import (
	"context"

	"real-estate-service/internal/core/domain"
)

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, cmd domain.CreatePropertyCommand) (*domain.PropertyDetailsView, error)
}
