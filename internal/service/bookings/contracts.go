package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByAgent(ctx context.Context, filter domain.AgentBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, updatedAt time.Time) error
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
