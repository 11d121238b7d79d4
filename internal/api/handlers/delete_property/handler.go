package delete_property

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "объект не найден"
	msgForbidden     = "удалять объект может только его агент"
)

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

// Handle DELETE /api/v1/properties/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /properties/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), propertyID, userID); err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("DELETE /properties/{id} - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("DELETE /properties/{id} - Access denied: property_id=%s, user_id=%s", propertyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /properties/{id} - Failed to delete property: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /properties/{id} - Property deleted successfully: property_id=%s", propertyID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
