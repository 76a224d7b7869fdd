package enrich

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"stylist-engine/internal/domain"
	"stylist-engine/internal/store"
)

// Options controls one enrichment sweep.
type Options struct {
	ReqPerSec     float64
	Burst         int
	MaxConcurrent int
	Timeout       time.Duration
}

func (o Options) withDefaults() Options {
	if o.ReqPerSec <= 0 {
		o.ReqPerSec = 2
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 4
	}
	if o.Timeout <= 0 {
		o.Timeout = 12 * time.Second
	}
	return o
}

// EnrichCatalog resolves and caches a product image for every catalog item
// that has a link and no cached image yet. Per-item failures log and skip;
// the sweep only errors on context cancellation.
func EnrichCatalog(ctx context.Context, db *sql.DB, items []domain.CatalogItem, opts Options) (cached int, err error) {
	opts = opts.withDefaults()
	limiter := NewHostLimiter(opts.ReqPerSec, opts.Burst)
	client := &http.Client{Timeout: opts.Timeout}

	var g errgroup.Group
	g.SetLimit(opts.MaxConcurrent)

	results := make(chan string, len(items))

	for _, item := range items {
		if item.ItemLink == "" || item.StyleID == "" {
			continue
		}
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			existing, gerr := store.GetItemImageKey(ctx, db, item.StyleID)
			if gerr != nil {
				log.Printf("[enrich] key lookup err style_id=%s err=%v", item.StyleID, gerr)
				return nil
			}
			if existing != "" {
				return nil
			}

			if err := limiter.WaitURL(ctx, item.ItemLink); err != nil {
				return err
			}

			imgURL, _ := FindProductImage(ctx, client, item.ItemLink)
			if imgURL == "" {
				return nil
			}

			key, cerr := store.CacheImageFromURL(ctx, db, imgURL)
			if cerr != nil {
				log.Printf("[enrich] cache err style_id=%s url=%s err=%v", item.StyleID, imgURL, cerr)
				return nil
			}
			if key == "" {
				return nil
			}

			if serr := store.SetItemImage(ctx, db, item.StyleID, key, imgURL); serr != nil {
				log.Printf("[enrich] map err style_id=%s err=%v", item.StyleID, serr)
				return nil
			}
			results <- item.StyleID
			return nil
		})
	}

	err = g.Wait()
	close(results)
	for range results {
		cached++
	}
	if err != nil {
		return cached, err
	}

	log.Printf("[enrich] sweep done items=%d cached=%d", len(items), cached)
	return cached, nil
}
