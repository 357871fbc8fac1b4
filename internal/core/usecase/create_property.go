package usecase

import (
	"context"
	"fmt"
	"time"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// CreatePropertyUseCase создает объект недвижимости, опционально с
// начальным трейсом цены, в рамках одной транзакции.
type CreatePropertyUseCase struct {
	uowFactory port.UnitOfWorkFactoryPort
	events     port.PropertyEventsPort
}

func NewCreatePropertyUseCase(uowFactory port.UnitOfWorkFactoryPort, events port.PropertyEventsPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		uowFactory: uowFactory,
		events:     events,
	}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, cmd domain.CreatePropertyCommand) (*domain.PropertyDetailsView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateProperty",
		"owner_id": cmd.OwnerID,
	})

	if cmd.Price <= 0 {
		return nil, fmt.Errorf("create property: %w", domain.ErrInvalidPrice)
	}

	uow := uc.uowFactory.New()

	// Владелец проверяется до открытия транзакции: его отсутствие -
	// нарушение контракта вызывающей стороны, а не сбой записи.
	ownerExists, err := uow.Owners().Exists(ctx, cmd.OwnerID)
	if err != nil {
		ucLogger.Error("Failed to check owner existence", err, nil)
		return nil, fmt.Errorf("failed to check owner %d: %w", cmd.OwnerID, err)
	}
	if !ownerExists {
		return nil, fmt.Errorf("owner %d: %w", cmd.OwnerID, domain.ErrOwnerNotFound)
	}

	tx, err := uow.Begin(ctx)
	if err != nil {
		ucLogger.Error("Failed to begin transaction", err, nil)
		return nil, err
	}

	newProperty := &domain.Property{
		Name:         cmd.Name,
		Address:      cmd.Address,
		Price:        cmd.Price,
		CodeInternal: cmd.CodeInternal,
		Year:         cmd.Year,
		OwnerID:      cmd.OwnerID,
	}
	if cmd.CreateInitialTrace {
		newProperty.Traces = []domain.PriceTrace{{
			DateOfChange: time.Now().UTC(),
			Name:         cmd.InitialTraceName,
			Value:        cmd.Price,
			Tax:          cmd.InitialTax,
		}}
	}

	created, err := uow.Properties().Create(ctx, newProperty)
	if err != nil {
		ucLogger.Error("Failed to persist property, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	if err := uow.Commit(ctx, tx); err != nil {
		ucLogger.Error("Commit failed, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return nil, fmt.Errorf("failed to commit property creation: %w", err)
	}

	ucLogger.Info("Property created", port.Fields{"property_id": created.ID})

	// После коммита, best-effort.
	if err := uc.events.PropertyCreated(ctx, created.ID, created.Price); err != nil {
		ucLogger.Error("Failed to publish property.created event", err, nil)
	}

	return detailsViewOf(created), nil
}

// detailsViewOf собирает представление без разрешения URL изображений:
// у только что созданного объекта их еще нет.
func detailsViewOf(p *domain.Property) *domain.PropertyDetailsView {
	view := &domain.PropertyDetailsView{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		Owner:        domain.Owner{ID: p.OwnerID},
		Images:       []domain.ImageView{},
		Traces:       append([]domain.PriceTrace{}, p.Traces...),
	}
	return view
}
