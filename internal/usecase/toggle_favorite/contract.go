package toggle_favorite

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// FavoriteRepository интерфейс репозитория избранного
type FavoriteRepository interface {
	FindByUserAndProperty(ctx context.Context, userID, propertyID string) (*domain.Favorite, error)
	Create(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
