package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RealtyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RealtyService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	images       ImageURLBuilder
	logger       Logger
	now          func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	images ImageURLBuilder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		images:       images,
		logger:       logger,
		now:          time.Now,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование могут только заявитель и агент
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	list, err := s.withProperties(ctx, []*domain.Booking{booking})
	if err != nil {
		return nil, err
	}

	return &list.Bookings[0], nil
}

// GetUserBookings получает бронирования пользователя вместе с краткими данными объектов
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", req.UserID)

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	filter := domain.UserBookingsFilter{UserID: req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return s.withProperties(ctx, bookings)
}

// GetAgentBookings получает бронирования объектов агента
func (s *Service) GetAgentBookings(ctx context.Context, req *models.GetAgentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetAgentBookings: fetching bookings for agent=%s, includeCancelled=%t", req.AgentID, req.IncludeCancelled)

	if req.AgentID == "" {
		return nil, fmt.Errorf("%w: agentID is required", ErrInvalidInput)
	}

	filter := domain.AgentBookingsFilter{AgentID: req.AgentID, IncludeCancelled: req.IncludeCancelled}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetAgentBookings: invalid status=%s for agent=%s", *req.Status, req.AgentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByAgent(ctx, filter)
	if err != nil {
		s.logger.Error("GetAgentBookings: repository error for agent=%s: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: GetAgentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAgentBookings: successfully fetched %d bookings for agent=%s", len(bookings), req.AgentID)
	return s.withProperties(ctx, bookings)
}

// Cancel отменяет бронирование
// Отменить может заявитель или агент, и только пока бронирование в статусе pending
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if !booking.IsParticipant(req.UserID) {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	err = s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, domain.StatusCancelled, s.now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%s changed status concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// UpdateStatus меняет статус бронирования по графу переходов
// Доступно только агенту бронирования
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if booking.AgentID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%s is not the agent of booking id=%s", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%s",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	err = s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, newStatus, s.now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: booking id=%s changed status concurrently", bookingID)
			return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// withProperties добавляет к бронированиям краткие данные объектов одним запросом
// Удаленный объект означает отсутствие сводки, а не ошибку
func (s *Service) withProperties(ctx context.Context, bookings []*domain.Booking) (*models.BookingListResponse, error) {
	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	if len(bookings) == 0 {
		return resp, nil
	}

	ids := make([]string, 0, len(bookings))
	seen := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.PropertyID]; ok {
			continue
		}
		seen[b.PropertyID] = struct{}{}
		ids = append(ids, b.PropertyID)
	}

	properties, err := s.propertyRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("withProperties: failed to load properties: %v", err)
		return nil, fmt.Errorf("%w: failed to load properties: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		item := models.FromDomainBooking(b)
		item.Property = models.FromDomainProperty(properties[b.PropertyID], s.images.ViewURL)
		resp.Bookings = append(resp.Bookings, *item)
	}

	return resp, nil
}
