package recommend

import (
	"strings"

	"stylist-engine/internal/domain"
)

// Category keyword tables. These substrings are part of the API contract
// with the catalog sheet; matching is deliberately fuzzy (substring over
// free-text taxonomy), not a closed enum.
var (
	shirtKeywords  = []string{"tshirt", "shirt"}
	jacketKeywords = []string{"jacket", "hoodie", "sweater", "puffer"}
	jeanKeywords   = []string{"jean", "pant", "cargo", "trouser"}
	shoeKeywords   = []string{"shoe", "sneaker", "oxford"}
)

// Categories lists the output buckets in response order, mostly for
// introspection endpoints and tests.
func Categories() []struct {
	Name     string
	Keywords []string
} {
	return []struct {
		Name     string
		Keywords []string
	}{
		{"shirts", shirtKeywords},
		{"jackets", jacketKeywords},
		{"jeans", jeanKeywords},
		{"shoes", shoeKeywords},
	}
}

// topByCategory filters the already-sorted scored list down to items whose
// taxonomy text contains any of the keywords, then truncates to limit.
// Filtering preserves the sort, so the prefix is the category's top-N.
func topByCategory(sorted []domain.ScoredItem, keywords []string, limit int) []domain.ScoredItem {
	out := make([]domain.ScoredItem, 0, limit)
	for _, item := range sorted {
		if len(out) == limit {
			break
		}
		if matchesCategory(item.CatalogItem, keywords) {
			out = append(out, item)
		}
	}
	return out
}

func matchesCategory(item domain.CatalogItem, keywords []string) bool {
	category := strings.ToLower(item.Category)
	main := strings.ToLower(item.MainCategory)
	sub := strings.ToLower(item.SubCategory)

	for _, kw := range keywords {
		if strings.Contains(category, kw) || strings.Contains(main, kw) || strings.Contains(sub, kw) {
			return true
		}
	}
	return false
}
