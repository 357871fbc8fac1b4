package rest

import (
	"strings"

	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"
)

// PublicURLBuilder собирает абсолютный URL изображения из схемы и хоста
// текущего запроса плюс настроенного базового пути раздачи медиа.
type PublicURLBuilder struct {
	mediaBasePath string
}

func NewPublicURLBuilder(mediaBasePath string) *PublicURLBuilder {
	basePath := "/" + strings.Trim(mediaBasePath, "/")
	if basePath == "/" {
		basePath = "/media"
	}
	return &PublicURLBuilder{mediaBasePath: basePath}
}

func (b *PublicURLBuilder) ToPublicURL(storedKey string, req domain.RequestInfo) string {
	scheme := req.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + req.Host + b.mediaBasePath + "/" + strings.TrimPrefix(storedKey, "/")
}

var _ port.ImageURLBuilderPort = (*PublicURLBuilder)(nil)
