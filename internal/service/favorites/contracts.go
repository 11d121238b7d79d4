package favorites

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// FavoriteRepository интерфейс репозитория избранного
type FavoriteRepository interface {
	GetByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	FindByUserAndProperty(ctx context.Context, userID, propertyID string) (*domain.Favorite, error)
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Property, error)
}

// ImageURLBuilder строит публичную ссылку на изображение
type ImageURLBuilder interface {
	ViewURL(fileID string) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
