package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"stylist-engine/internal/catalog"
	"stylist-engine/internal/domain"
)

func item(id, mainCat, subCat string) domain.CatalogItem {
	return domain.CatalogItem{
		StyleID:       id,
		MainCategory:  mainCat,
		SubCategory:   subCat,
		Gender:        "male",
		WeatherMin:    1,
		WeatherMax:    5,
		LifestyleTags: []string{"casual"},
		BodyTypeFit:   "average",
		SkinUndertone: "neutral",
	}
}

func prefs() domain.PreferenceRecord {
	return domain.PreferenceRecord{
		Gender:    "male",
		Weather:   50,
		Lifestyle: "casual",
		BodyType:  "average",
		SkinTone:  50,
	}
}

func fixedSource(items []domain.CatalogItem) catalog.Source {
	return catalog.SourceFunc(func(ctx context.Context) ([]domain.CatalogItem, error) {
		return items, nil
	})
}

func TestGetRecommendationsBuckets(t *testing.T) {
	items := []domain.CatalogItem{
		item("sh1", "Tops", "T-Shirt"),
		item("sh2", "Tops", "Shirt"),
		item("jk1", "Outerwear", "Puffer Jacket"),
		item("jn1", "Bottoms", "Cargo Pant"),
		item("so1", "Footwear", "Sneaker"),
		item("xx1", "Accessories", "Belt"), // matches nothing
	}

	svc := NewService(fixedSource(items), 4)
	got, err := svc.GetRecommendations(context.Background(), prefs())
	if err != nil {
		t.Fatal(err)
	}

	ids := func(list []domain.ScoredItem) []string {
		var out []string
		for _, s := range list {
			out = append(out, s.StyleID)
		}
		return out
	}

	if want := []string{"sh1", "sh2"}; !reflect.DeepEqual(ids(got.Shirts), want) {
		t.Fatalf("shirts = %v, want %v", ids(got.Shirts), want)
	}
	if want := []string{"jk1"}; !reflect.DeepEqual(ids(got.Jackets), want) {
		t.Fatalf("jackets = %v, want %v", ids(got.Jackets), want)
	}
	if want := []string{"jn1"}; !reflect.DeepEqual(ids(got.Jeans), want) {
		t.Fatalf("jeans = %v, want %v", ids(got.Jeans), want)
	}
	if want := []string{"so1"}; !reflect.DeepEqual(ids(got.Shoes), want) {
		t.Fatalf("shoes = %v, want %v", ids(got.Shoes), want)
	}
}

func TestBucketCapAndOrder(t *testing.T) {
	// Six shirts with varying gender matches: cap at 4, sorted descending.
	var items []domain.CatalogItem
	for i := 0; i < 6; i++ {
		it := item(string(rune('a'+i)), "Tops", "Shirt")
		if i < 3 {
			it.Gender = "female" // penalized, sorts to the bottom
		}
		items = append(items, it)
	}

	svc := NewService(fixedSource(items), 4)
	got, err := svc.GetRecommendations(context.Background(), prefs())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Shirts) != 4 {
		t.Fatalf("got %d shirts, want cap 4", len(got.Shirts))
	}
	for i := 1; i < len(got.Shirts); i++ {
		if got.Shirts[i-1].Score < got.Shirts[i].Score {
			t.Fatalf("bucket not sorted at %d", i)
		}
	}
	// The three gender-matched items (d,e,f) lead, in catalog order.
	lead := []string{got.Shirts[0].StyleID, got.Shirts[1].StyleID, got.Shirts[2].StyleID}
	if !reflect.DeepEqual(lead, []string{"d", "e", "f"}) {
		t.Fatalf("leading shirts = %v", lead)
	}
}

func TestBucketsNotMutuallyExclusive(t *testing.T) {
	// Sub-category text matching two keyword sets lands in both buckets.
	items := []domain.CatalogItem{item("x1", "Tops", "Shirt Jacket")}
	svc := NewService(fixedSource(items), 4)
	got, err := svc.GetRecommendations(context.Background(), prefs())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Shirts) != 1 || len(got.Jackets) != 1 {
		t.Fatalf("shirts=%d jackets=%d, want the item in both", len(got.Shirts), len(got.Jackets))
	}
}

func TestEmptyCatalog(t *testing.T) {
	svc := NewService(fixedSource(nil), 4)
	got, err := svc.GetRecommendations(context.Background(), prefs())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Shirts)+len(got.Jackets)+len(got.Jeans)+len(got.Shoes) != 0 {
		t.Fatal("want four empty buckets for an empty catalog")
	}
}

func TestCatalogLoadError(t *testing.T) {
	boom := errors.New("disk gone")
	svc := NewService(catalog.SourceFunc(func(ctx context.Context) ([]domain.CatalogItem, error) {
		return nil, boom
	}), 4)

	_, err := svc.GetRecommendations(context.Background(), prefs())
	var loadErr *CatalogLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want *CatalogLoadError", err)
	}
	if !errors.Is(err, boom) {
		t.Fatal("load error must wrap the source error")
	}
}

func TestLoadOnceAndClearCache(t *testing.T) {
	var loads atomic.Int32
	src := catalog.SourceFunc(func(ctx context.Context) ([]domain.CatalogItem, error) {
		loads.Add(1)
		return []domain.CatalogItem{item("sh1", "Tops", "Shirt")}, nil
	})

	svc := NewService(src, 4)
	for i := 0; i < 3; i++ {
		if _, err := svc.GetRecommendations(context.Background(), prefs()); err != nil {
			t.Fatal(err)
		}
	}
	if n := loads.Load(); n != 1 {
		t.Fatalf("loads = %d, want 1 (cached)", n)
	}

	svc.ClearCache()
	if _, err := svc.GetRecommendations(context.Background(), prefs()); err != nil {
		t.Fatal(err)
	}
	if n := loads.Load(); n != 2 {
		t.Fatalf("loads = %d after ClearCache, want 2", n)
	}
}

func TestConcurrentFirstLoadIsShared(t *testing.T) {
	var loads atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	src := catalog.SourceFunc(func(ctx context.Context) ([]domain.CatalogItem, error) {
		if loads.Add(1) == 1 {
			close(started)
		}
		<-release
		return []domain.CatalogItem{item("sh1", "Tops", "Shirt")}, nil
	})

	svc := NewService(src, 4)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := svc.GetRecommendations(context.Background(), prefs())
			return err
		})
	}
	<-started
	close(release)
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if n := loads.Load(); n != 1 {
		t.Fatalf("loads = %d, want exactly one in-flight load", n)
	}
}

func TestIdempotentForFixedCatalog(t *testing.T) {
	items := []domain.CatalogItem{
		item("sh1", "Tops", "Shirt"),
		item("sh2", "Tops", "Shirt"),
		item("jk1", "Outerwear", "Jacket"),
	}
	svc := NewService(fixedSource(items), 4)

	first, err := svc.GetRecommendations(context.Background(), prefs())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.GetRecommendations(context.Background(), prefs())
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d differed from first result", i)
		}
	}
}
