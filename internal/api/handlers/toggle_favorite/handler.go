package toggle_favorite

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	toggleFavorite "github.com/m04kA/SMC-RealtyService/internal/usecase/toggle_favorite"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgPropertyNotFound = "объект не найден"
	msgInvalidData      = "некорректный запрос"
)

// ToggleFavoriteResponse HTTP response model
type ToggleFavoriteResponse struct {
	PropertyID string  `json:"propertyId"`
	Favorited  bool    `json:"favorited"`
	FavoriteID *string `json:"favoriteId,omitempty"`
}

type Handler struct {
	useCase ToggleFavoriteUseCase
	logger  Logger
}

func NewHandler(useCase ToggleFavoriteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/favorites/{propertyId}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /favorites/{id}/toggle - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &toggleFavorite.Request{
		UserID:     userID,
		PropertyID: propertyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, toggleFavorite.ErrPropertyNotFound):
			h.logger.Warn("POST /favorites/{id}/toggle - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, toggleFavorite.ErrInvalidInput):
			h.logger.Warn("POST /favorites/{id}/toggle - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /favorites/{id}/toggle - Failed to toggle favorite: user_id=%s, property_id=%s, error=%v",
				userID, propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := ToggleFavoriteResponse{PropertyID: propertyID, Favorited: result.Favorited}
	if result.Favorite != nil {
		resp.FavoriteID = &result.Favorite.ID
	}

	h.logger.Info("POST /favorites/{id}/toggle - Favorite toggled: user_id=%s, property_id=%s, favorited=%t",
		userID, propertyID, result.Favorited)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
