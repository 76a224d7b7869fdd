package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stylist-engine/internal/domain"
	"stylist-engine/internal/events"
	"stylist-engine/internal/recommend"
	"stylist-engine/internal/store"
)

type RecommendHandler struct {
	DB                 *sql.DB
	Hub                *events.Hub
	GetRecommendations func(ctx context.Context, prefs domain.PreferenceRecord) (domain.RecommendationResult, error)
}

type recommendResponse struct {
	Message         string                      `json:"message"`
	Recommendations domain.RecommendationResult `json:"recommendations"`
	Preferences     domain.PreferenceRecord     `json:"preferences"`
}

// Post serves POST /recommendations with the preference record in the body.
func (h RecommendHandler) Post(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var prefs domain.PreferenceRecord
	if err := dec.Decode(&prefs); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	if msg := validatePrefs(prefs); msg != "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_preferences", msg)
		return
	}

	h.serve(w, r, prefs)
}

// PostForProfile serves POST /recommendations/profile/{id}: scores with the
// stored onboarding profile instead of an inline preference record.
func (h RecommendHandler) PostForProfile(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/recommendations/profile/"))
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing profile id")
		return
	}

	profile, err := store.GetProfile(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrProfileNotFound) {
		WriteError(w, r, http.StatusNotFound, "profile_not_found",
			"complete onboarding first to get personalized recommendations")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	h.serve(w, r, profile.Preferences())
}

func (h RecommendHandler) serve(w http.ResponseWriter, r *http.Request, prefs domain.PreferenceRecord) {
	result, err := h.GetRecommendations(r.Context(), prefs)
	if err != nil {
		var loadErr *recommend.CatalogLoadError
		if errors.As(err, &loadErr) {
			WriteError(w, r, http.StatusServiceUnavailable, "catalog_unavailable", loadErr.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeRecommendationsServed, 1, map[string]any{
		"shirts":  len(result.Shirts),
		"jackets": len(result.Jackets),
		"jeans":   len(result.Jeans),
		"shoes":   len(result.Shoes),
	}))

	writeJSON(w, recommendResponse{
		Message:         "Recommendations generated successfully",
		Recommendations: result,
		Preferences:     prefs,
	})
}

// validatePrefs rejects structurally broken requests. Vocabulary the engine
// merely floors (unknown body types, odd style tags) passes through: that
// degrade-by-design path belongs to scoring, not the transport.
func validatePrefs(p domain.PreferenceRecord) string {
	if strings.TrimSpace(p.Gender) == "" {
		return "gender is required"
	}
	if strings.TrimSpace(p.Lifestyle) == "" {
		return "lifestyle is required"
	}
	if strings.TrimSpace(p.BodyType) == "" {
		return "bodyType is required"
	}
	if p.Weather < 0 || p.Weather > 100 {
		return fmt.Sprintf("weather must be 0..100, got %d", p.Weather)
	}
	if p.SkinTone < 0 || p.SkinTone > 100 {
		return fmt.Sprintf("skinTone must be 0..100, got %d", p.SkinTone)
	}
	return ""
}
