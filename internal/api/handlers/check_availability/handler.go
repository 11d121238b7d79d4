package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RealtyService/internal/usecase/check_availability"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams = "некорректные параметры запроса"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PropertyID string `json:"propertyId"`
	Date       string `json:"date"`
	TimeSlot   string `json:"timeSlot"`
	Available  bool   `json:"available"`
}

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/availability
// Query params: date (YYYY-MM-DD), timeSlot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	timeSlot := domain.TimeSlot(query.Get("timeSlot"))
	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		PropertyID: propertyID,
		Date:       date,
		TimeSlot:   timeSlot,
	})
	if err != nil {
		if errors.Is(err, checkAvailability.ErrInvalidInput) {
			h.logger.Warn("GET /properties/{id}/availability - Invalid params: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /properties/{id}/availability - Failed to check slot: property_id=%s, error=%v",
			propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		PropertyID: propertyID,
		Date:       date.Format(domain.DateFormat),
		TimeSlot:   string(timeSlot),
		Available:  result.Available,
	})
}
