package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-RealtyService/internal/usecase/check_availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	availability AvailabilityChecker
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	availability AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		availability: availability,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в сериализуемой транзакции,
// уникальный индекс по активным слотам закрывает оставшуюся гонку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, property=%s, type=%s, date=%s, slot=%s",
		req.UserID, req.PropertyID, req.Type, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не может быть в прошлом; слот в этом случае не проверяется
	now := uc.timeProvider.Now()
	date := domain.DateOnly(req.Date)
	if isDateInPast(date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	var result *domain.Booking

	// 3. Выполняем проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем, что слот свободен
		availability, err := uc.availability.Execute(txCtx, &check_availability.Request{
			PropertyID: req.PropertyID,
			Date:       date,
			TimeSlot:   req.TimeSlot,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !availability.Available {
			uc.logger.Warn("CreateBooking: slot %s on %s is taken for property=%s",
				req.TimeSlot, date.Format(domain.DateFormat), req.PropertyID)
			return ErrSlotNotAvailable
		}

		// 3.2. Получаем объект и проверяем его статус
		property, err := uc.propertyRepo.GetByID(txCtx, req.PropertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				uc.logger.Warn("CreateBooking: property id=%s not found", req.PropertyID)
				return ErrPropertyNotFound
			}
			uc.logger.Error("CreateBooking: failed to get property id=%s: %v", req.PropertyID, err)
			return fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
		}

		if !property.Status.IsBookable() {
			uc.logger.Warn("CreateBooking: property id=%s is not bookable, status=%q", property.ID, property.Status)
			return &PropertyNotBookableError{Status: property.Status}
		}

		// 3.3. Агент берется из объекта; явно переданный должен совпадать
		agentID := req.AgentID
		if agentID == "" {
			agentID = property.AgentID
		} else if agentID != property.AgentID {
			uc.logger.Warn("CreateBooking: agent %s does not own property id=%s", agentID, property.ID)
			return fmt.Errorf("%w: agent does not match property", ErrInvalidInput)
		}

		// 3.4. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			PropertyID: req.PropertyID,
			UserID:     req.UserID,
			AgentID:    agentID,
			Type:       req.Type,
			Status:     domain.StatusPending,
			Date:       date,
			TimeSlot:   req.TimeSlot,
			Notes:      req.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot was taken concurrently for property=%s", req.PropertyID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if isRejection(err) {
			return nil, err
		}
		// Ошибки фиксации транзакции (в т.ч. конфликт сериализации)
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{Booking: result}, nil
}

// isRejection отделяет ожидаемые отказы и уже обернутые ошибки от сбоев транзакции
func isRejection(err error) bool {
	return errors.Is(err, ErrSlotNotAvailable) ||
		errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrPropertyNotBookable) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal)
}
