package usecases_port

import (
	"context"

	"real-estate-service/internal/core/domain"
)

// Execute возвращает false без ошибки, если объекта с таким ID нет.
type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, cmd domain.UpdatePropertyCommand) (bool, error)
}
