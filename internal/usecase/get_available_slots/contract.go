package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByPropertyAndDate получает неотмененные бронирования объекта на дату
	GetActiveByPropertyAndDate(ctx context.Context, propertyID string, date time.Time) ([]*domain.Booking, error)
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

// Now возвращает текущее время в UTC, даты бронирований считаются в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
