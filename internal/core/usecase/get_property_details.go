package usecase

import (
	"context"
	"fmt"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// GetPropertyDetailsUseCase читает объект вместе с владельцем,
// изображениями и трейсами и разрешает публичные URL изображений.
// Данные запроса (схема/хост) передаются явно, а не берутся из
// глобального состояния.
type GetPropertyDetailsUseCase struct {
	uowFactory port.UnitOfWorkFactoryPort
	urlBuilder port.ImageURLBuilderPort
}

func NewGetPropertyDetailsUseCase(uowFactory port.UnitOfWorkFactoryPort, urlBuilder port.ImageURLBuilderPort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{
		uowFactory: uowFactory,
		urlBuilder: urlBuilder,
	}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, propertyID int64, req domain.RequestInfo) (*domain.PropertyDetailsView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": propertyID,
	})

	details, err := uc.uowFactory.New().Properties().GetDetails(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Failed to load property details", err, nil)
		return nil, fmt.Errorf("failed to load property %d details: %w", propertyID, err)
	}
	if details == nil {
		ucLogger.Info("Property not found", nil)
		return nil, nil
	}

	// Коллекции всегда непустые слайсы, даже если изображений или
	// трейсов нет. Порядок гарантирует запрос в репозитории.
	images := make([]domain.ImageView, 0, len(details.Images))
	for _, img := range details.Images {
		images = append(images, domain.ImageView{
			ID:        img.ID,
			StoredKey: img.StoredKey,
			URL:       uc.urlBuilder.ToPublicURL(img.StoredKey, req),
			Enabled:   img.Enabled,
		})
	}
	traces := details.Traces
	if traces == nil {
		traces = []domain.PriceTrace{}
	}

	view := &domain.PropertyDetailsView{
		ID:           details.ID,
		Name:         details.Name,
		Address:      details.Address,
		Price:        details.Price,
		CodeInternal: details.CodeInternal,
		Year:         details.Year,
		Owner:        details.Owner,
		Images:       images,
		Traces:       traces,
	}

	ucLogger.Info("Property details loaded", port.Fields{
		"images": len(view.Images),
		"traces": len(view.Traces),
	})
	return view, nil
}
