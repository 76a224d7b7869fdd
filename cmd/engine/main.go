package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"stylist-engine/internal/catalog"
	"stylist-engine/internal/config"
	"stylist-engine/internal/enrich"
	"stylist-engine/internal/events"
	"stylist-engine/internal/httpapi"
	"stylist-engine/internal/recommend"
	"stylist-engine/internal/scheduler"
	"stylist-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the desktop shell passes one),
	// else local folder.
	dataDir := os.Getenv("STYLIST_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable. Tag aliases can live in a side
	// file next to the user config.
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		tagsPath := filepath.Join(filepath.Dir(userCfgPath), "tags.yml")
		if err := config.OverlayTagAliases(&cfg, tagsPath); err != nil {
			return cfg, err
		}
		return cfg, config.Validate(cfg)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "stylist.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	src := &catalog.CSVSource{
		Path:       cfg.Catalog.CSVPath,
		TagAliases: cfg.Tags.Aliases,
	}
	svc := recommend.NewService(src, cfg.Catalog.PerCategory)

	hub := events.NewHub()

	reloadCatalog := func(ctx context.Context) (int, error) {
		svc.ClearCache()
		items, err := svc.Catalog(ctx)
		if err != nil {
			return 0, err
		}
		return len(items), nil
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:                 db.Pool,
		Hub:                hub,
		CfgVal:             &cfgVal,
		UserCfgPath:        userCfgPath,
		LoadCfg:            loadCfg,
		GetRecommendations: svc.GetRecommendations,
		CatalogStatus:      svc.Loaded,
		ReloadCatalog:      reloadCatalog,
	})

	handler := httpapi.Chain(mux,
		httpapi.RateLimit(cfg.API.RatePerSec, cfg.API.Burst),
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the catalog in the background so the first request is fast.
	go func() {
		if items, err := svc.Catalog(ctx); err != nil {
			log.Printf("level=warn msg=\"catalog warm failed\" err=%v", err)
		} else {
			log.Printf("level=info msg=\"catalog loaded\" items=%d path=%s", len(items), cfg.Catalog.CSVPath)
			if cfg.Enrich.Enabled {
				opts := enrich.Options{
					ReqPerSec:     cfg.Enrich.ReqPerSec,
					Burst:         cfg.Enrich.Burst,
					MaxConcurrent: cfg.Enrich.MaxConcurrent,
					Timeout:       time.Duration(cfg.Enrich.TimeoutSeconds) * time.Second,
				}
				if n, err := enrich.EnrichCatalog(ctx, db.Pool, items, opts); err != nil {
					log.Printf("level=warn msg=\"enrich sweep failed\" err=%v", err)
				} else if n > 0 {
					hub.Publish(events.MakeEvent("", events.TypeCatalogReloaded, 1, map[string]any{"images_cached": n}))
				}
			}
		}
	}()

	if cfg.Catalog.RefreshSeconds > 0 {
		interval := time.Duration(cfg.Catalog.RefreshSeconds) * time.Second
		go scheduler.Every(ctx, interval, "catalog-refresh", func(ctx context.Context) error {
			n, err := reloadCatalog(ctx)
			if err != nil {
				return err
			}
			hub.Publish(events.MakeEvent("", events.TypeCatalogReloaded, 1, map[string]any{"count": n}))
			return nil
		})
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
