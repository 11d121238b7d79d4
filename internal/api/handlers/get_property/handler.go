package get_property

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties"
)

const msgNotFound = "объект не найден"

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

// Handle GET /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	property, err := h.service.GetByID(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, properties.ErrPropertyNotFound) {
			h.logger.Warn("GET /properties/{id} - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /properties/{id} - Failed to get property: property_id=%s, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, property)
}
