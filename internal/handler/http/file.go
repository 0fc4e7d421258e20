package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

// Stored photos are compressed to at most a few hundred KB.
const maxServedFile = 5 << 20

type FileHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	fileService file.FileService
}

func NewFileHandler(fileService file.FileService) FileHandler {
	return &fileHandlerImpl{fileService: fileService}
}

// Serve handles GET /files/*
func (h *fileHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		response.BadRequest(w, "File path is required", nil)
		return
	}

	rc, err := h.fileService.Open(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	content, err := io.ReadAll(io.LimitReader(rc, maxServedFile))
	if err != nil {
		slog.Error("Failed to read stored file", "key", key, "error", err)
		response.InternalServerError(w, "Failed to read file")
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(content).String())
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
