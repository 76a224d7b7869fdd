package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	CatalogStatus func() (loaded bool, count int)
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	loaded, count := h.CatalogStatus()
	writeJSON(w, map[string]any{
		"ok":             true,
		"time":           time.Now().UTC().Format(time.RFC3339),
		"catalog_loaded": loaded,
		"catalog_count":  count,
	})
}
