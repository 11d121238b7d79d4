package get_favorites

import (
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle GET /api/v1/users/me/favorites
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/favorites - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/favorites - Failed to get favorites: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/favorites - Favorites retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Favorites))
	handlers.RespondJSON(w, http.StatusOK, result.Favorites)
}
