package update_property

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
	msgInvalidForm   = "некорректная форма объекта"
	msgInvalidImages = "некорректные изображения"
	msgNotFound      = "объект не найден"
	msgForbidden     = "изменять объект может только его агент"
	msgInvalidData   = "некорректные данные объекта"
)

type Handler struct {
	service  PropertyService
	maxBytes int64
	logger   Logger
}

func NewHandler(service PropertyService, maxBytes int64, logger Logger) *Handler {
	return &Handler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Handle PUT /api/v1/properties/{propertyId} (multipart/form-data)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /properties/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := handlers.ParseMultipart(w, r, h.maxBytes); err != nil {
		h.logger.Warn("PUT /properties/{id} - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	serviceReq, err := ToServiceRequest(r, userID)
	if err != nil {
		h.logger.Warn("PUT /properties/{id} - Invalid form values: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	images, closeImages, err := handlers.FormImages(r, "images")
	if err != nil {
		h.logger.Warn("PUT /properties/{id} - Invalid images: %v", err)
		handlers.RespondBadRequest(w, msgInvalidImages)
		return
	}
	defer closeImages()
	serviceReq.NewImages = images

	result, err := h.service.Update(r.Context(), propertyID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			h.logger.Warn("PUT /properties/{id} - Property not found: property_id=%s", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("PUT /properties/{id} - Access denied: property_id=%s, user_id=%s", propertyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("PUT /properties/{id} - Invalid data: property_id=%s, error=%v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /properties/{id} - Failed to update property: property_id=%s, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /properties/{id} - Property updated successfully: property_id=%s", propertyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
