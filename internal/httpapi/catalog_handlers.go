package httpapi

import (
	"context"
	"net/http"

	"stylist-engine/internal/events"
)

type CatalogHandler struct {
	Hub           *events.Hub
	CatalogStatus func() (loaded bool, count int)
	ReloadCatalog func(ctx context.Context) (count int, err error)
}

type CatalogStatus struct {
	Loaded bool `json:"loaded"`
	Count  int  `json:"count"`
}

func (h CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	loaded, count := h.CatalogStatus()
	writeJSON(w, CatalogStatus{Loaded: loaded, Count: count})
}

// Reload drops the cached catalog and warms a fresh one, so sheet edits show
// up without restarting the engine.
func (h CatalogHandler) Reload(w http.ResponseWriter, r *http.Request) {
	count, err := h.ReloadCatalog(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusServiceUnavailable, "catalog_unavailable", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeCatalogReloaded, 1, map[string]any{"count": count}))
	writeJSON(w, CatalogStatus{Loaded: true, Count: count})
}
