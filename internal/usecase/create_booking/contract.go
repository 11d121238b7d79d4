package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	"github.com/m04kA/SMC-RealtyService/internal/usecase/check_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PropertyRepository интерфейс репозитория объектов
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

// AvailabilityChecker проверка занятости слота
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
