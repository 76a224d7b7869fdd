package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"stylist-engine/internal/config"
	"stylist-engine/internal/domain"
	"stylist-engine/internal/events"
	"stylist-engine/internal/recommend"
	"stylist-engine/internal/store"
)

func testDeps(t *testing.T) Deps {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}

	var cfgVal atomic.Value
	cfgVal.Store(config.Default(t.TempDir()))

	return Deps{
		DB:     db.Pool,
		Hub:    events.NewHub(),
		CfgVal: &cfgVal,
		GetRecommendations: func(ctx context.Context, prefs domain.PreferenceRecord) (domain.RecommendationResult, error) {
			return domain.RecommendationResult{
				Shirts: []domain.ScoredItem{{CatalogItem: domain.CatalogItem{StyleID: "sh1"}, Score: 1.5}},
			}, nil
		},
		CatalogStatus: func() (bool, int) { return true, 7 },
		ReloadCatalog: func(ctx context.Context) (int, error) { return 7, nil },
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validPrefsBody = `{"gender":"male","weather":50,"lifestyle":"casual","bodyType":"average","height":180,"skinTone":50,"styles":["classic"]}`

func TestPostRecommendations(t *testing.T) {
	mux := NewMux(testDeps(t))

	rec := doJSON(t, mux, http.MethodPost, "/recommendations", validPrefsBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Recommendations domain.RecommendationResult `json:"recommendations"`
		Preferences     domain.PreferenceRecord     `json:"preferences"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Recommendations.Shirts) != 1 || resp.Recommendations.Shirts[0].StyleID != "sh1" {
		t.Fatalf("unexpected recommendations: %+v", resp.Recommendations)
	}
	if resp.Preferences.Gender != "male" {
		t.Fatalf("echoed preferences wrong: %+v", resp.Preferences)
	}
}

func TestPostRecommendationsValidation(t *testing.T) {
	mux := NewMux(testDeps(t))

	cases := []string{
		`{"weather":50,"lifestyle":"casual","bodyType":"average"}`, // no gender
		`{"gender":"male","lifestyle":"casual","bodyType":"average","weather":101}`,
		`{"gender":"male","weather":50,"bodyType":"average"}`, // no lifestyle
		`{not json`,
	}
	for _, body := range cases {
		rec := doJSON(t, mux, http.MethodPost, "/recommendations", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestPostRecommendationsCatalogDown(t *testing.T) {
	d := testDeps(t)
	d.GetRecommendations = func(ctx context.Context, prefs domain.PreferenceRecord) (domain.RecommendationResult, error) {
		return domain.RecommendationResult{}, &recommend.CatalogLoadError{Err: context.DeadlineExceeded}
	}
	mux := NewMux(d)

	rec := doJSON(t, mux, http.MethodPost, "/recommendations", validPrefsBody)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var e APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.Error.Code != "catalog_unavailable" {
		t.Fatalf("code = %q", e.Error.Code)
	}
}

func TestProfileRoundTripAndRecommend(t *testing.T) {
	d := testDeps(t)
	var gotPrefs domain.PreferenceRecord
	d.GetRecommendations = func(ctx context.Context, prefs domain.PreferenceRecord) (domain.RecommendationResult, error) {
		gotPrefs = prefs
		return domain.RecommendationResult{}, nil
	}
	mux := NewMux(d)

	body := `{"name":"Sam","gender":"female","weather":70,"lifestyle":"formal","bodyType":"curvy","height":165,"skinTone":40,"styles":["minimal"]}`
	rec := doJSON(t, mux, http.MethodPut, "/profiles/user-1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, mux, http.MethodGet, "/profiles/user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var p store.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "Sam" || p.Lifestyle != "formal" {
		t.Fatalf("profile = %+v", p)
	}

	rec = doJSON(t, mux, http.MethodPost, "/recommendations/profile/user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend-for-profile status = %d body=%s", rec.Code, rec.Body.String())
	}
	if gotPrefs.Gender != "female" || gotPrefs.BodyType != "curvy" {
		t.Fatalf("profile preferences not forwarded: %+v", gotPrefs)
	}
}

func TestProfileValidation(t *testing.T) {
	mux := NewMux(testDeps(t))

	cases := []string{
		`{"gender":"robot"}`,
		`{"lifestyle":"gorpcore"}`,
		`{"weather":150}`,
		`{"height":90}`,
	}
	for _, body := range cases {
		rec := doJSON(t, mux, http.MethodPut, "/profiles/user-1", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRecommendForMissingProfile(t *testing.T) {
	mux := NewMux(testDeps(t))
	rec := doJSON(t, mux, http.MethodPost, "/recommendations/profile/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCatalogStatusAndReload(t *testing.T) {
	mux := NewMux(testDeps(t))

	rec := doJSON(t, mux, http.MethodGet, "/catalog/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st CatalogStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if !st.Loaded || st.Count != 7 {
		t.Fatalf("catalog status = %+v", st)
	}

	rec = doJSON(t, mux, http.MethodPost, "/catalog/reload", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reload status = %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := NewMux(testDeps(t))
	rec := doJSON(t, mux, http.MethodGet, "/recommendations", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
