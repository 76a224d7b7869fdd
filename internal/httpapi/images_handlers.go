package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"stylist-engine/internal/store"
)

type ImagesHandler struct {
	DB *sql.DB
}

// GetByPath serves cached product images at /image/{key}.
func (h ImagesHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/image/"))
	if key == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_key", "missing image key")
		return
	}

	ct, b, err := store.GetImage(r.Context(), h.DB, key)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if b == nil {
		http.NotFound(w, r)
		return
	}

	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(b)
}
