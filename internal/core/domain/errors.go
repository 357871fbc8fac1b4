package domain

import "errors"

var (
	// Отсутствие сущности, на которую ссылается команда, - нарушение
	// контракта вызывающей стороны.
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrPropertyNotFound = errors.New("property not found")

	// Нарушения бизнес-инвариантов, отсекаются до открытия транзакции.
	ErrInvalidPrice = errors.New("price must be positive")

	// Неправильное использование Unit of Work - дефект кода, не данных.
	ErrTxAlreadyOpen = errors.New("transaction already open")
	ErrTxMismatch    = errors.New("transaction handle mismatch")

	// Политика blob-хранилища.
	ErrUnsupportedImage = errors.New("unsupported image extension")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
)
