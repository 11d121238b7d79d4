package get_agent_bookings

import (
	"context"

	"github.com/m04kA/SMC-RealtyService/internal/service/bookings/models"
)

type BookingService interface {
	GetAgentBookings(ctx context.Context, req *models.GetAgentBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
