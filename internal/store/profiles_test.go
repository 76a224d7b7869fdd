package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "stylist.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestProfileRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := Profile{
		ID:        "user-1",
		Name:      "Sam",
		Gender:    "female",
		Weather:   70,
		Lifestyle: "casual",
		BodyType:  "curvy",
		Height:    165,
		SkinTone:  40,
		Styles:    []string{"minimal", "classic"},
		PhotoURL:  "https://cdn.example/photo.jpg",
	}
	if err := UpsertProfile(ctx, db.Pool, p); err != nil {
		t.Fatal(err)
	}

	got, err := GetProfile(ctx, db.Pool, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Sam" || got.Gender != "female" || got.SkinTone != 40 {
		t.Fatalf("got %+v", got)
	}
	if !reflect.DeepEqual(got.Styles, p.Styles) {
		t.Fatalf("styles = %v, want %v", got.Styles, p.Styles)
	}
	if got.UpdatedAt == "" {
		t.Fatal("updated_at not set")
	}

	// Upsert overwrites
	p.Lifestyle = "formal"
	if err := UpsertProfile(ctx, db.Pool, p); err != nil {
		t.Fatal(err)
	}
	got, err = GetProfile(ctx, db.Pool, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Lifestyle != "formal" {
		t.Fatalf("lifestyle = %q after upsert", got.Lifestyle)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := GetProfile(context.Background(), db.Pool, "ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestProfilePreferencesDefaults(t *testing.T) {
	p := Profile{ID: "user-2", Weather: 50, SkinTone: 50}
	prefs := p.Preferences()
	if prefs.Gender != "male" || prefs.Lifestyle != "casual" || prefs.BodyType != "average" {
		t.Fatalf("defaults not applied: %+v", prefs)
	}
	if prefs.Height != 170 {
		t.Fatalf("height default = %d", prefs.Height)
	}
}

func TestItemImageMapping(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := SetItemImage(ctx, db.Pool, "OX-1", "abc123", "https://shop.example/ox1.jpg"); err != nil {
		t.Fatal(err)
	}
	key, err := GetItemImageKey(ctx, db.Pool, "OX-1")
	if err != nil {
		t.Fatal(err)
	}
	if key != "abc123" {
		t.Fatalf("key = %q", key)
	}

	key, err = GetItemImageKey(ctx, db.Pool, "missing")
	if err != nil || key != "" {
		t.Fatalf("missing mapping: key=%q err=%v", key, err)
	}
}
