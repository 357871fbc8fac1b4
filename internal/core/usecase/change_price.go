package usecase

import (
	"context"
	"fmt"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// ChangePriceUseCase атомарно меняет цену объекта. Неположительная
// цена отклоняется до открытия транзакции; хранилище не трогается.
type ChangePriceUseCase struct {
	uowFactory port.UnitOfWorkFactoryPort
	events     port.PropertyEventsPort
}

func NewChangePriceUseCase(uowFactory port.UnitOfWorkFactoryPort, events port.PropertyEventsPort) *ChangePriceUseCase {
	return &ChangePriceUseCase{
		uowFactory: uowFactory,
		events:     events,
	}
}

func (uc *ChangePriceUseCase) Execute(ctx context.Context, cmd domain.ChangePriceCommand) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ChangePrice",
		"property_id": cmd.PropertyID,
	})

	if cmd.NewPrice <= 0 {
		return false, fmt.Errorf("change price: %w", domain.ErrInvalidPrice)
	}

	uow := uc.uowFactory.New()

	tx, err := uow.Begin(ctx)
	if err != nil {
		ucLogger.Error("Failed to begin transaction", err, nil)
		return false, err
	}

	affected, err := uow.Properties().SetPrice(ctx, cmd.PropertyID, cmd.NewPrice)
	if err != nil {
		ucLogger.Error("Price update failed, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return false, fmt.Errorf("failed to change price of property %d: %w", cmd.PropertyID, err)
	}

	if affected == 0 {
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		ucLogger.Info("Property not found, price unchanged", nil)
		return false, nil
	}

	if err := uow.Commit(ctx, tx); err != nil {
		ucLogger.Error("Commit failed, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return false, fmt.Errorf("failed to commit price change: %w", err)
	}

	ucLogger.Info("Price changed", port.Fields{"new_price": cmd.NewPrice})

	if err := uc.events.PriceChanged(ctx, cmd.PropertyID, cmd.NewPrice); err != nil {
		ucLogger.Error("Failed to publish property.price_changed event", err, nil)
	}

	return true, nil
}
