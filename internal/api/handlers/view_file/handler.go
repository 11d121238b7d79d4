package view_file

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	"github.com/m04kA/SMC-RealtyService/internal/infra/filestorage/gridfs"
)

const msgNotFound = "файл не найден"

type Handler struct {
	files  FileStorage
	logger Logger
}

func NewHandler(files FileStorage, logger Logger) *Handler {
	return &Handler{
		files:  files,
		logger: logger,
	}
}

// Handle GET /api/v1/files/{fileId}/view
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["fileId"]

	// Файл читается в буфер, чтобы при ошибке чтения вернуть корректный статус
	var buf bytes.Buffer
	contentType, err := h.files.Open(r.Context(), fileID, &buf)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			h.logger.Warn("GET /files/{id}/view - File not found: file_id=%s", fileID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /files/{id}/view - Failed to read file: file_id=%s, error=%v", fileID, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
