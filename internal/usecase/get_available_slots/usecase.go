package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
)

// UseCase use case для получения слотов объекта на дату
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает все слоты дня с признаком доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Прошедшие даты не бронируются
	if isDateInPast(date, uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем объект
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("GetAvailableSlots: property id=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get property id=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	// 4. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.GetActiveByPropertyAndDate(ctx, req.PropertyID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	taken := make(map[domain.TimeSlot]struct{}, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			taken[b.TimeSlot] = struct{}{}
		}
	}

	// 5. Объект, закрытый для бронирования, не имеет свободных слотов
	bookable := property.Status.IsBookable()
	slots := make([]Slot, 0, len(domain.TimeSlots))
	for _, slot := range domain.TimeSlots {
		_, busy := taken[slot]
		slots = append(slots, Slot{TimeSlot: slot, Available: bookable && !busy})
	}

	uc.logger.Info("GetAvailableSlots: property=%s, date=%s, taken=%d, bookable=%t",
		req.PropertyID, date.Format(domain.DateFormat), len(taken), bookable)

	return &Response{
		PropertyID: req.PropertyID,
		Date:       date,
		Bookable:   bookable,
		Slots:      slots,
	}, nil
}
