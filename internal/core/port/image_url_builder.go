package port

import "real-estate-service/internal/core/domain"

// ImageURLBuilderPort превращает ключ хранилища в абсолютный публичный
// URL. Чистая функция без I/O; данные запроса передаются явно.
type ImageURLBuilderPort interface {
	ToPublicURL(storedKey string, req domain.RequestInfo) string
}
