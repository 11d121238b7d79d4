package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
)

// UseCase проверяет, свободен ли слот объекта на дату
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute считает активные бронирования на (объект, дата, слот)
// При ошибке запроса слот никогда не считается свободным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	count, err := uc.bookingRepo.CountActiveBySlot(ctx, domain.SlotFilter{
		PropertyID: req.PropertyID,
		Date:       domain.DateOnly(req.Date),
		TimeSlot:   req.TimeSlot,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count bookings for property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: property=%s, date=%s, slot=%s, active=%d",
		req.PropertyID, req.Date.Format(domain.DateFormat), req.TimeSlot, count)

	return &Response{Available: count == 0}, nil
}
