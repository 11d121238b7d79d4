package check_availability

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountActiveBySlot считает неотмененные бронирования на слот объекта
	CountActiveBySlot(ctx context.Context, filter domain.SlotFilter) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
