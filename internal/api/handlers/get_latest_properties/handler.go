package get_latest_properties

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties"
)

const msgInvalidLimit = "некорректный limit"

type Handler struct {
	service PropertyService
	logger  Logger
}

func NewHandler(service PropertyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/latest
// Query params: limit (опционально, по умолчанию 5)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.logger.Warn("GET /properties/latest - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.GetLatest(r.Context(), limit)
	if err != nil {
		if errors.Is(err, properties.ErrInvalidInput) {
			h.logger.Warn("GET /properties/latest - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}

		h.logger.Error("GET /properties/latest - Failed to get properties: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
