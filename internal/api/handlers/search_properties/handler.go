package search_properties

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
	searchProperties "github.com/m04kA/SMC-RealtyService/internal/usecase/search_properties"
)

const (
	msgInvalidParams = "некорректные параметры поиска"
)

type Handler struct {
	useCase SearchPropertiesUseCase
	images  ImageURLBuilder
	logger  Logger
}

func NewHandler(useCase SearchPropertiesUseCase, images ImageURLBuilder, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		images:  images,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /properties - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, searchProperties.ErrInvalidInput) {
			h.logger.Warn("GET /properties - Invalid filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /properties - Search failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /properties - Search completed: count=%d", len(result.Properties))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPropertyList(result.Properties, h.images.ViewURL))
}
