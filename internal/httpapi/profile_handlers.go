package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stylist-engine/internal/events"
	"stylist-engine/internal/store"
)

type ProfilesHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func profileID(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/profiles/"))
}

func (h ProfilesHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := profileID(r)
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing profile id")
		return
	}

	p, err := store.GetProfile(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrProfileNotFound) {
		WriteError(w, r, http.StatusNotFound, "profile_not_found", "no profile for id "+id)
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, p)
}

func (h ProfilesHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	id := profileID(r)
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing profile id")
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var p store.Profile
	if err := dec.Decode(&p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	p.ID = id

	if msg := validateProfile(p); msg != "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_profile", msg)
		return
	}

	if err := store.UpsertProfile(r.Context(), h.DB, p); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	saved, err := store.GetProfile(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeProfileSaved, 1, map[string]any{"id": id}))
	writeJSON(w, saved)
}

func (h ProfilesHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := profileID(r)
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing profile id")
		return
	}
	if err := store.DeleteProfile(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

// validateProfile mirrors the onboarding form's constraints. Empty strings
// are allowed (partially completed onboarding); present values must be in
// range.
func validateProfile(p store.Profile) string {
	if p.Gender != "" && !oneOf(p.Gender, "male", "female", "other") {
		return "gender must be male, female or other"
	}
	if p.Lifestyle != "" && !oneOf(p.Lifestyle, "formal", "casual", "athletic") {
		return "lifestyle must be formal, casual or athletic"
	}
	if p.BodyType != "" && !oneOf(p.BodyType, "slim", "athletic", "average", "muscular", "curvy", "plus") {
		return "bodyType must be one of slim, athletic, average, muscular, curvy, plus"
	}
	if p.Weather < 0 || p.Weather > 100 {
		return fmt.Sprintf("weather must be 0..100, got %d", p.Weather)
	}
	if p.SkinTone < 0 || p.SkinTone > 100 {
		return fmt.Sprintf("skinTone must be 0..100, got %d", p.SkinTone)
	}
	if p.Height != 0 && (p.Height < 100 || p.Height > 250) {
		return fmt.Sprintf("height must be 100..250 cm, got %d", p.Height)
	}
	return ""
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
