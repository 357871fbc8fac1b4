package usecases_port

import (
	"context"

	"real-estate-service/internal/core/domain"
)

type AddPropertyImageUseCasePort interface {
	Execute(ctx context.Context, cmd domain.AddPropertyImageCommand) (*domain.PropertyImage, error)
}
