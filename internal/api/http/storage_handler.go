package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"juntaai-backend/internal/storage"

	"github.com/gorilla/mux"
)

// StorageHandler serves the local storage backend over HTTP: signed PUT
// uploads and public object reads, the same contract a hosted object store
// would provide.
type StorageHandler struct {
	store       *storage.LocalStorage
	maxFileSize int64
}

func NewStorageHandler(store *storage.LocalStorage, maxFileSizeMB int64) *StorageHandler {
	return &StorageHandler{store: store, maxFileSize: maxFileSizeMB << 20}
}

func (h *StorageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	ct := r.URL.Query().Get("ct")
	sig := r.URL.Query().Get("sig")
	expires, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
	if key == "" || sig == "" || err != nil {
		http.Error(w, "missing upload signature", http.StatusBadRequest)
		return
	}
	if err := h.store.VerifyUploadSignature(key, ct, expires, sig); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	if got := r.Header.Get("Content-Type"); got != ct {
		http.Error(w, "content type does not match signed upload", http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := h.store.SaveFile(key, body); err != nil {
		http.Error(w, "failed to store object", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *StorageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "object not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, file); err != nil {
		return
	}
}
