package create_property

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidForm   = "некорректная форма объекта"
	msgInvalidImages = "некорректные изображения"
	msgForbidden     = "создавать объекты могут только агенты"
	msgInvalidData   = "некорректные данные объекта"
)

type Handler struct {
	service  PropertyService
	maxBytes int64
	logger   Logger
}

// NewHandler maxBytes ограничивает размер multipart тела
func NewHandler(service PropertyService, maxBytes int64, logger Logger) *Handler {
	return &Handler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Handle POST /api/v1/properties (multipart/form-data)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /properties - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := handlers.ParseMultipart(w, r, h.maxBytes); err != nil {
		h.logger.Warn("POST /properties - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	serviceReq, err := ToServiceRequest(r, userID, middleware.GetRole(r.Context()))
	if err != nil {
		h.logger.Warn("POST /properties - Invalid form values: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	images, closeImages, err := handlers.FormImages(r, "images")
	if err != nil {
		h.logger.Warn("POST /properties - Invalid images: %v", err)
		handlers.RespondBadRequest(w, msgInvalidImages)
		return
	}
	defer closeImages()
	serviceReq.Images = images

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrAccessDenied):
			h.logger.Warn("POST /properties - Access denied: user_id=%s", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, properties.ErrInvalidInput):
			h.logger.Warn("POST /properties - Invalid data: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /properties - Failed to create property: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties - Property created successfully: property_id=%s, agent_id=%s",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
