package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/storage"

	"github.com/gorilla/mux"
)

// PhotoHandler serves uploads and downloads for customer and equipment
// photos backed by the storage layer.
type PhotoHandler struct {
	store       storage.Storage
	maxFileSize int64
}

func NewPhotoHandler(store storage.Storage, maxFileSizeMB int64) *PhotoHandler {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 10
	}
	return &PhotoHandler{store: store, maxFileSize: maxFileSizeMB << 20}
}

func (h *PhotoHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/photos/{category:customers|equipment|id-proofs}", h.Upload).Methods("POST")
}

// RegisterPublicRoutes mounts the download path outside the auth middleware
// so photo URLs work in plain <img> tags.
func (h *PhotoHandler) RegisterPublicRoutes(router *mux.Router) {
	router.PathPrefix("/photos/").HandlerFunc(h.Download).Methods("GET")
}

func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file too large or malformed upload"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unsupported content type %q", contentType)})
		return
	}

	key, err := h.store.Save(category, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": h.store.URL(key),
	})
}

func (h *PhotoHandler) Download(w http.ResponseWriter, r *http.Request) {
	const prefix = "/photos/"
	key := ""
	if i := strings.Index(r.URL.Path, prefix); i >= 0 {
		key = r.URL.Path[i+len(prefix):]
	}
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing photo key"})
		return
	}

	rc, size, err := h.store.Open(key)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "photo not found"})
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	if _, err := io.Copy(w, rc); err != nil {
		return
	}
}
