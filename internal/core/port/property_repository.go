package port

import (
	"context"

	"real-estate-service/internal/core/domain"
)

type PropertyRepositoryPort interface {
	// Create сохраняет агрегат вместе с начальными трейсами и
	// возвращает его с назначенными хранилищем идентификаторами.
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)

	// GetByID возвращает nil, nil если объекта нет - это штатный исход.
	GetByID(ctx context.Context, propertyID int64) (*domain.Property, error)

	// GetDetails читает объект вместе с владельцем, изображениями и
	// трейсами за один запрос. Изображения по возрастанию ID, трейсы
	// по убыванию даты, затем по убыванию ID.
	GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error)

	// Update заменяет изменяемые поля. false - объекта нет.
	Update(ctx context.Context, property *domain.Property) (bool, error)

	// SetPrice атомарно обновляет цену и возвращает число затронутых строк.
	SetPrice(ctx context.Context, propertyID int64, newPrice float64) (int64, error)

	AddImage(ctx context.Context, image *domain.PropertyImage) (int64, error)
	AddTrace(ctx context.Context, trace *domain.PriceTrace) (int64, error)

	Exists(ctx context.Context, propertyID int64) (bool, error)

	FindWithFilters(ctx context.Context, filters domain.PropertyFilters) (*domain.PagedProperties, error)
}
