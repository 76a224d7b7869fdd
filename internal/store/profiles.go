package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"stylist-engine/internal/domain"
)

// ErrProfileNotFound is returned when no profile exists for the given id.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a persisted onboarding record. Height and photo URL ride along
// for the UI; the scoring engine only consumes the preference fields.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Gender    string   `json:"gender"`
	Weather   int      `json:"weather"`
	Lifestyle string   `json:"lifestyle"`
	BodyType  string   `json:"bodyType"`
	Height    int      `json:"height"`
	SkinTone  int      `json:"skinTone"`
	Styles    []string `json:"styles"`
	PhotoURL  string   `json:"photoUrl"`
	UpdatedAt string   `json:"updatedAt"`
}

// Preferences converts the stored profile into the normalized record the
// scoring engine consumes, applying the onboarding defaults for anything
// the user skipped.
func (p Profile) Preferences() domain.PreferenceRecord {
	prefs := domain.PreferenceRecord{
		Gender:    p.Gender,
		Weather:   p.Weather,
		Lifestyle: p.Lifestyle,
		BodyType:  p.BodyType,
		Height:    p.Height,
		SkinTone:  p.SkinTone,
		Styles:    p.Styles,
	}
	if prefs.Gender == "" {
		prefs.Gender = "male"
	}
	if prefs.Lifestyle == "" {
		prefs.Lifestyle = "casual"
	}
	if prefs.BodyType == "" {
		prefs.BodyType = "average"
	}
	if prefs.Height == 0 {
		prefs.Height = 170
	}
	return prefs
}

func UpsertProfile(ctx context.Context, db *sql.DB, p Profile) error {
	stylesJSON, err := json.Marshal(p.Styles)
	if err != nil {
		return fmt.Errorf("marshal styles: %w", err)
	}
	if p.Styles == nil {
		stylesJSON = []byte("[]")
	}

	_, err = db.ExecContext(ctx, `
INSERT INTO profiles (id, name, gender, weather, lifestyle, body_type, height, skin_tone, styles, photo_url, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  gender = excluded.gender,
  weather = excluded.weather,
  lifestyle = excluded.lifestyle,
  body_type = excluded.body_type,
  height = excluded.height,
  skin_tone = excluded.skin_tone,
  styles = excluded.styles,
  photo_url = excluded.photo_url,
  updated_at = excluded.updated_at;`,
		p.ID, p.Name, p.Gender, p.Weather, p.Lifestyle, p.BodyType,
		p.Height, p.SkinTone, string(stylesJSON), p.PhotoURL,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func GetProfile(ctx context.Context, db *sql.DB, id string) (Profile, error) {
	var p Profile
	var stylesJSON string
	err := db.QueryRowContext(ctx, `
SELECT id, name, gender, weather, lifestyle, body_type, height, skin_tone, styles, photo_url, updated_at
FROM profiles WHERE id = ?;`, id).Scan(
		&p.ID, &p.Name, &p.Gender, &p.Weather, &p.Lifestyle, &p.BodyType,
		&p.Height, &p.SkinTone, &stylesJSON, &p.PhotoURL, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	_ = json.Unmarshal([]byte(stylesJSON), &p.Styles)
	return p, nil
}

func DeleteProfile(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?;`, id)
	return err
}
