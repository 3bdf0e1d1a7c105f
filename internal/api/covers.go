package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/raido/internal/covers"
)

const maxUploadBytes = 10 << 20 // 10 MB

// CoverHandler serves and accepts journey cover images.
type CoverHandler struct {
	store *covers.FS
}

// NewCoverHandler creates a handler backed by the given cover store.
func NewCoverHandler(store *covers.FS) *CoverHandler {
	return &CoverHandler{store: store}
}

// Upload handles POST /covers (multipart/form-data, field "file").
// The returned URL is what a draft's coverImage field should carry.
func (h *CoverHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	if err := h.store.Write(header.Filename, data); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, CoverUploadResponse{
		Filename: header.Filename,
		Size:     int64(len(data)),
		URL:      "/covers/" + header.Filename,
	})
}

// ServeFile handles GET /covers/{filename}.
func (h *CoverHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.store.Path(filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}
