package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-RealtyService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgDateOrSlotMissing  = "выберите дату и время бронирования"
	msgDateInPast         = "нельзя забронировать дату в прошлом"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgPropertyNotFound   = "объект не найден"
	msgNotBookable        = "объект нельзя забронировать, текущий статус: %s"
	msgInvalidData        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var notBookable *createBooking.PropertyNotBookableError

		switch {
		case errors.Is(err, createBooking.ErrDateOrTimeSlotMissing):
			h.logger.Warn("POST /bookings - Date or slot missing: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgDateOrSlotMissing)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: user_id=%s, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: property_id=%s, date=%s, slot=%s",
				req.PropertyID, req.Date, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrPropertyNotFound):
			h.logger.Warn("POST /bookings - Property not found: property_id=%s", req.PropertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.As(err, &notBookable):
			h.logger.Warn("POST /bookings - Property not bookable: property_id=%s, %v", req.PropertyID, err)
			status := string(notBookable.Status)
			if status == "" {
				status = "unknown"
			}
			handlers.RespondConflict(w, fmt.Sprintf(msgNotBookable, status))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, property_id=%s, error=%v",
				userID, req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, property_id=%s",
		result.Booking.ID, userID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
