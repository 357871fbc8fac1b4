package usecase

import (
	"context"
	"fmt"

	"real-estate-service/internal/contextkeys"
	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// AddPropertyImageUseCase загружает изображение в blob-хранилище и
// привязывает его к объекту в одной транзакции. Единственное место,
// где сбой в БД требует компенсации во втором домене отказов: уже
// загруженный blob удаляется, чтобы не осталось сироты.
type AddPropertyImageUseCase struct {
	uowFactory port.UnitOfWorkFactoryPort
	storage    port.ImageStoragePort
}

func NewAddPropertyImageUseCase(uowFactory port.UnitOfWorkFactoryPort, storage port.ImageStoragePort) *AddPropertyImageUseCase {
	return &AddPropertyImageUseCase{
		uowFactory: uowFactory,
		storage:    storage,
	}
}

func (uc *AddPropertyImageUseCase) Execute(ctx context.Context, cmd domain.AddPropertyImageCommand) (*domain.PropertyImage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "AddPropertyImage",
		"property_id": cmd.PropertyID,
		"file_name":   cmd.Image.FileName,
	})

	uow := uc.uowFactory.New()

	// Проверка существования идет вне транзакции.
	exists, err := uow.Properties().Exists(ctx, cmd.PropertyID)
	if err != nil {
		ucLogger.Error("Failed to check property existence", err, nil)
		return nil, fmt.Errorf("failed to check property %d: %w", cmd.PropertyID, err)
	}
	if !exists {
		return nil, fmt.Errorf("property %d: %w", cmd.PropertyID, domain.ErrPropertyNotFound)
	}

	tx, err := uow.Begin(ctx)
	if err != nil {
		ucLogger.Error("Failed to begin transaction", err, nil)
		return nil, err
	}

	keyPrefix := fmt.Sprintf("properties/%d", cmd.PropertyID)
	storedKey, err := uc.storage.Upload(ctx, cmd.Image.Content, cmd.Image.FileName, cmd.Image.ContentType, keyPrefix)
	if err != nil {
		// Blob не загружен, компенсировать нечего.
		ucLogger.Error("Upload failed, rolling back", err, nil)
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	image := &domain.PropertyImage{
		PropertyID: cmd.PropertyID,
		StoredKey:  storedKey,
		Enabled:    cmd.Enabled,
	}
	imageID, err := uow.Properties().AddImage(ctx, image)
	if err != nil {
		// Сначала откат транзакции, затем компенсация blob'а. Ошибка
		// удаления не подменяет исходную причину.
		ucLogger.Error("Image persist failed, rolling back and compensating blob", err, port.Fields{"stored_key": storedKey})
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		if delErr := uc.storage.Delete(ctx, storedKey); delErr != nil {
			ucLogger.Error("Compensating blob delete failed, orphaned content may remain", delErr, port.Fields{"stored_key": storedKey})
		}
		return nil, fmt.Errorf("failed to persist image for property %d: %w", cmd.PropertyID, err)
	}

	if err := uow.Commit(ctx, tx); err != nil {
		ucLogger.Error("Commit failed, rolling back and compensating blob", err, port.Fields{"stored_key": storedKey})
		if rbErr := uow.Rollback(ctx, tx); rbErr != nil {
			ucLogger.Error("Rollback failed", rbErr, nil)
		}
		if delErr := uc.storage.Delete(ctx, storedKey); delErr != nil {
			ucLogger.Error("Compensating blob delete failed, orphaned content may remain", delErr, port.Fields{"stored_key": storedKey})
		}
		return nil, fmt.Errorf("failed to commit image for property %d: %w", cmd.PropertyID, err)
	}

	image.ID = imageID
	ucLogger.Info("Image added", port.Fields{"image_id": imageID, "stored_key": storedKey})
	return image, nil
}
