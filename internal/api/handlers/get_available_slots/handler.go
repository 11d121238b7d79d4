package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-RealtyService/internal/usecase/get_available_slots"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast        = "дата в прошлом"
	msgPropertyNotFound  = "объект не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]
	if propertyID == "" {
		h.logger.Warn("GET /properties/{id}/available-slots - Empty property ID")
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /properties/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(propertyID, dateStr)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/available-slots - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /properties/{id}/available-slots - Date in past: property_id=%s, date=%s",
				propertyID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)

		default:
			h.logger.Error("GET /properties/{id}/available-slots - Failed to get slots: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/available-slots - Slots retrieved successfully: property_id=%s, slots_count=%d",
		propertyID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
