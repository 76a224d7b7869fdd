package httpapi

import "net/http"

// NewMux wires all handlers; main() wraps it with the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Recommendations
	rh := RecommendHandler{DB: d.DB, Hub: d.Hub, GetRecommendations: d.GetRecommendations}
	mux.HandleFunc("/recommendations", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Post,
	}))
	mux.HandleFunc("/recommendations/profile/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.PostForProfile, // expects /recommendations/profile/{id}
	}))

	// Catalog
	cath := CatalogHandler{Hub: d.Hub, CatalogStatus: d.CatalogStatus, ReloadCatalog: d.ReloadCatalog}
	mux.HandleFunc("/catalog/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cath.Status,
	}))
	mux.HandleFunc("/catalog/reload", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: cath.Reload,
	}))

	// Profiles
	ph := ProfilesHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/profiles/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    ph.GetByPath, // expects /profiles/{id}
		http.MethodPut:    ph.PutByPath,
		http.MethodDelete: ph.DeleteByPath,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Cached product images
	ih := ImagesHandler{DB: d.DB}
	mux.HandleFunc("/image/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.GetByPath,
	}))

	// Health + maintenance
	hh := HealthHandler{CatalogStatus: d.CatalogStatus}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))
	dh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	return mux
}
