package port

import "context"

// ImageStoragePort - blob-хранилище изображений, отдельный от БД домен
// отказов. Политику расширений и размера применяет сама реализация
// (domain.ErrUnsupportedImage / domain.ErrImageTooLarge до любого I/O).
type ImageStoragePort interface {
	// Upload кладет содержимое под ключ с заданным префиксом и
	// возвращает выданный ключ.
	Upload(ctx context.Context, content []byte, fileName, contentType, keyPrefix string) (string, error)

	// Delete - best-effort: отсутствие объекта ошибкой не считается.
	Delete(ctx context.Context, storedKey string) error
}
