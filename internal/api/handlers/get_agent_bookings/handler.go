package get_agent_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/service/bookings"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/agents/me/bookings
// Query params: status, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /agents/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(agentID, query.Get("status"), query.Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /agents/me/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetAgentBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /agents/me/bookings - Invalid parameters: agent_id=%s, error=%v", agentID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /agents/me/bookings - Failed to get bookings: agent_id=%s, error=%v",
			agentID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agents/me/bookings - Bookings retrieved successfully: agent_id=%s, count=%d",
		agentID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
