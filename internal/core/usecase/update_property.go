package usecase

import (
	"context"
	"fmt"
	"time"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// Метка трейса, который добавляется при смене цены через Update.
const priceUpdatedTraceName = "Price updated"

// UpdatePropertyUseCase полностью заменяет изменяемые поля объекта.
// Если новая цена отличается от сохраненной, добавляется трейс - это
// неотъемлемая часть Update, флага для отключения нет намеренно.
type UpdatePropertyUseCase struct {
	uowFactory port.UnitOfWorkFactoryPort
}

func NewUpdatePropertyUseCase(uowFactory port.UnitOfWorkFactoryPort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{uowFactory: uowFactory}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, cmd domain.UpdatePropertyCommand) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": cmd.PropertyID,
	})

	if cmd.Price <= 0 {
		return false, fmt.Errorf("update property: %w", domain.ErrInvalidPrice)
	}

	uow := uc.uowFactory.New()

	ownerExists, err := uow.Owners().Exists(ctx, cmd.OwnerID)
	if err != nil {
		ucLogger.Error("Failed to check owner existence", err, nil)
		return false, fmt.Errorf("failed to check owner %d: %w", cmd.OwnerID, err)
	}
	if !ownerExists {
		return false, fmt.Errorf("owner %d: %w", cmd.OwnerID, domain.ErrOwnerNotFound)
	}

	tx, err := uow.Begin(ctx)
	if err != nil {
		ucLogger.Error("Failed to begin transaction", err, nil)
		return false, err
	}

	updated, err := uc.updateInTx(ctx, uow, cmd)
	if err != nil {
		ucLogger.Error("Update failed, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return false, err
	}
	if !updated {
		// Отсутствие объекта - штатный исход, но писать нечего.
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		ucLogger.Info("Property not found, nothing updated", nil)
		return false, nil
	}

	if err := uow.Commit(ctx, tx); err != nil {
		ucLogger.Error("Commit failed, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return false, fmt.Errorf("failed to commit property update: %w", err)
	}

	ucLogger.Info("Property updated", nil)
	return true, nil
}

func (uc *UpdatePropertyUseCase) updateInTx(ctx context.Context, uow port.UnitOfWorkPort, cmd domain.UpdatePropertyCommand) (bool, error) {
	existing, err := uow.Properties().GetByID(ctx, cmd.PropertyID)
	if err != nil {
		return false, fmt.Errorf("failed to load property %d: %w", cmd.PropertyID, err)
	}
	if existing == nil {
		return false, nil
	}

	priceChanged := existing.Price != cmd.Price

	existing.Name = cmd.Name
	existing.Address = cmd.Address
	existing.Price = cmd.Price
	existing.CodeInternal = cmd.CodeInternal
	existing.Year = cmd.Year
	existing.OwnerID = cmd.OwnerID

	ok, err := uow.Properties().Update(ctx, existing)
	if err != nil {
		return false, fmt.Errorf("failed to update property %d: %w", cmd.PropertyID, err)
	}
	if !ok {
		return false, nil
	}

	if priceChanged {
		trace := &domain.PriceTrace{
			PropertyID:   cmd.PropertyID,
			DateOfChange: time.Now().UTC(),
			Name:         priceUpdatedTraceName,
			Value:        cmd.Price,
			Tax:          0,
		}
		if _, err := uow.Properties().AddTrace(ctx, trace); err != nil {
			return false, fmt.Errorf("failed to append price trace for property %d: %w", cmd.PropertyID, err)
		}
	}

	return true, nil
}
