package usecase

import (
	"context"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// ListPropertiesUseCase - фильтрация и пагинация списка объектов.
// Страница за пределами результата возвращает пустой срез с настоящим
// total, а не ошибку.
type ListPropertiesUseCase struct {
	uowFactory port.UnitOfWorkFactoryPort
}

func NewListPropertiesUseCase(uowFactory port.UnitOfWorkFactoryPort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{uowFactory: uowFactory}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters) (*domain.PagedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ListProperties",
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})

	filters.Normalize()

	result, err := uc.uowFactory.New().Properties().FindWithFilters(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished", port.Fields{
		"total_found":   result.Total,
		"items_on_page": len(result.Items),
	})
	return result, nil
}
