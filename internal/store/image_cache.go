package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cached product images are capped to keep the DB small; anything larger is
// skipped, not truncated.
const maxImageBytes = 1 << 20 // 1MB

func ImageKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(u))
	return hex.EncodeToString(h[:])
}

// CacheImageFromURL fetches a product image and stores its bytes keyed by a
// hash of the URL. Best-effort: fetch problems return an empty key and nil
// error so enrichment can move on to the next item.
func CacheImageFromURL(ctx context.Context, db *sql.DB, raw string) (key string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}

	pu, err := url.Parse(raw)
	if err != nil || pu.Scheme == "" || pu.Host == "" {
		return "", nil
	}

	key = ImageKeyFromURL(raw)

	// Already cached?
	var exists int
	e := db.QueryRowContext(ctx, `SELECT 1 FROM product_images WHERE key = ? LIMIT 1;`, key).Scan(&exists)
	if e == nil {
		return key, nil
	}
	if !errors.Is(e, sql.ErrNoRows) {
		return "", e
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[image-cache] fetch error url=%s err=%v", raw, err)
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[image-cache] non-2xx url=%s status=%s", raw, resp.Status)
		return "", nil
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", nil
	}
	if len(b) == 0 || len(b) > maxImageBytes {
		return "", nil
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		sn := http.DetectContentType(b)
		if !strings.HasPrefix(sn, "image/") {
			return "", nil
		}
		ct = sn
	}

	_, err = db.ExecContext(ctx, `
INSERT OR REPLACE INTO product_images(key, content_type, bytes, fetched_at)
VALUES(?,?,?,?);`,
		key, ct, b, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetImage returns the cached bytes and content type for a key.
func GetImage(ctx context.Context, db *sql.DB, key string) (contentType string, bytes []byte, err error) {
	err = db.QueryRowContext(ctx, `
SELECT content_type, bytes FROM product_images WHERE key = ?;`, key).Scan(&contentType, &bytes)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return contentType, bytes, nil
}

// SetItemImage records which cached image belongs to a catalog item.
func SetItemImage(ctx context.Context, db *sql.DB, styleID, imageKey, sourceURL string) error {
	_, err := db.ExecContext(ctx, `
INSERT OR REPLACE INTO item_images(style_id, image_key, source_url, fetched_at)
VALUES(?,?,?,?);`,
		styleID, imageKey, sourceURL, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetItemImageKey returns the cached image key for a style id, or "".
func GetItemImageKey(ctx context.Context, db *sql.DB, styleID string) (string, error) {
	var key string
	err := db.QueryRowContext(ctx, `
SELECT image_key FROM item_images WHERE style_id = ?;`, styleID).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return key, err
}
