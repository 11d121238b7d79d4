package get_favorite_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/service/favorites"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidData   = "некорректный запрос"
)

type Handler struct {
	service FavoriteService
	logger  Logger
}

func NewHandler(service FavoriteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/favorites/{propertyId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /favorites/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Status(r.Context(), userID, propertyID)
	if err != nil {
		if errors.Is(err, favorites.ErrInvalidInput) {
			h.logger.Warn("GET /favorites/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}
		h.logger.Error("GET /favorites/{id} - Failed to get favorite status: user_id=%s, property_id=%s, error=%v",
			userID, propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
