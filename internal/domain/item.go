package domain

// CatalogItem is one sellable clothing entry from the inventory feed.
// Taxonomy fields are free text used for keyword matching, not a closed enum.
type CatalogItem struct {
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Type          string   `json:"type"`
	Color         string   `json:"color"`
	ItemLink      string   `json:"itemLink"`
	StyleID       string   `json:"styleId"`
	MainCategory  string   `json:"mainCategory"`
	SubCategory   string   `json:"subCategory"`
	Gender        string   `json:"gender"` // male/female/unisex, case-insensitive
	BaseColor     string   `json:"baseColor"`
	ColorFamily   string   `json:"colorFamily"`
	WeatherMin    int      `json:"weatherMin"` // 1 = hot, 5 = very cold
	WeatherMax    int      `json:"weatherMax"`
	StyleTags     []string `json:"styleTags"`
	LifestyleTags []string `json:"lifestyleTags"` // formal/casual/athletic
	BodyTypeFit   string   `json:"bodyTypeFit"`   // "average" fits everyone
	SkinUndertone string   `json:"skinUndertone"` // "neutral" fits everyone

	// Present in the feed, not consumed by scoring yet.
	FormalityScore int `json:"formalityScore"`
	LayerLevel     int `json:"layerLevel"`
}

// MatchDetails holds the six per-factor sub-scores, each in [0,1].
type MatchDetails struct {
	GenderMatch    float64 `json:"genderMatch"`
	WeatherMatch   float64 `json:"weatherMatch"`
	LifestyleMatch float64 `json:"lifestyleMatch"`
	BodyTypeMatch  float64 `json:"bodyTypeMatch"`
	StyleMatch     float64 `json:"styleMatch"`
	SkinToneMatch  float64 `json:"skinToneMatch"`
}

// ScoredItem is a CatalogItem with its weighted match score attached.
// Recomputed per request, never persisted.
type ScoredItem struct {
	CatalogItem
	Score        float64      `json:"score"` // rounded to 2 decimals
	MatchDetails MatchDetails `json:"matchDetails"`
}

// RecommendationResult is the fixed four-bucket response shape.
// Buckets are not mutually exclusive: an item whose taxonomy text matches
// several keyword sets appears in each of them.
type RecommendationResult struct {
	Shirts  []ScoredItem `json:"shirts"`
	Jackets []ScoredItem `json:"jackets"`
	Jeans   []ScoredItem `json:"jeans"`
	Shoes   []ScoredItem `json:"shoes"`
}
