package score

import (
	"math"
	"sort"
	"strings"

	"stylist-engine/internal/domain"
)

// Factor weights. Deliberately unnormalized (they sum to 2.0): the ranking
// only cares about relative order, and renormalizing would rescale every
// stored expectation downstream.
const (
	WeightGender    = 1.0
	WeightWeather   = 0.25
	WeightLifestyle = 0.20
	WeightBodyType  = 0.15
	WeightStyle     = 0.25
	WeightSkinTone  = 0.15

	// A gender mismatch keeps 10% of the base score instead of zeroing it,
	// so mismatched items sink to the bottom but the result set is never
	// empty while the catalog has items.
	GenderMismatchMultiplier = 0.1
)

// Lifestyle cross-compatibility bonuses and floor.
const (
	LifestyleFormalToCasual   = 0.5 // formal user, casual item
	LifestyleCasualToFormal   = 0.6 // casual user, formal item
	LifestyleAthleticToCasual = 0.7 // athletic user, casual item
	LifestyleFloor            = 0.2 // no lifestyle ever fully excludes an item
)

// Body-type adjacency score and floor.
const (
	BodyTypeAdjacent = 0.7
	BodyTypeFloor    = 0.4
)

// Style matching.
const (
	StyleNeutral    = 0.5 // user picked no styles; absence is not penalized
	StyleNoMatch    = 0.2
	StyleMultiBonus = 0.1 // flat bonus when more than one style matched
)

// Skin undertone compatibility.
const (
	SkinToneNeutralCompat = 0.8 // neutral on either side works broadly
	SkinToneFloor         = 0.5
)

// Weather distance penalty: being maximally far from the item's range costs
// at most half the factor, never eliminating the item.
const weatherDistancePenalty = 0.5

// bodyTypeSimilarity maps a user body type to the item fits that still score
// as adjacent. Unknown body types find no entry and fall through to the floor.
var bodyTypeSimilarity = map[string][]string{
	"slim":     {"athletic", "average"},
	"athletic": {"slim", "muscular", "average"},
	"muscular": {"athletic", "average"},
	"average":  {"slim", "athletic", "muscular", "curvy"},
	"curvy":    {"average", "plus"},
	"plus":     {"curvy", "average"},
}

// Score computes the weighted match score for one item against one
// preference record. Pure and total: malformed string fields degrade to the
// factor's floor, never an error.
func Score(item domain.CatalogItem, prefs domain.PreferenceRecord) domain.ScoredItem {
	details := domain.MatchDetails{
		GenderMatch:    matchGender(item, prefs),
		WeatherMatch:   matchWeather(item, prefs),
		LifestyleMatch: matchLifestyle(item, prefs),
		BodyTypeMatch:  matchBodyType(item, prefs),
		StyleMatch:     matchStyle(item, prefs),
		SkinToneMatch:  matchSkinTone(item, prefs),
	}

	base := details.GenderMatch*WeightGender +
		details.WeatherMatch*WeightWeather +
		details.LifestyleMatch*WeightLifestyle +
		details.BodyTypeMatch*WeightBodyType +
		details.StyleMatch*WeightStyle +
		details.SkinToneMatch*WeightSkinTone

	final := base
	if details.GenderMatch == 0 {
		final = base * GenderMismatchMultiplier
	}

	return domain.ScoredItem{
		CatalogItem:  item,
		Score:        round2(final),
		MatchDetails: details,
	}
}

// ScoreAll scores every item (no pre-filtering, gender mismatches included)
// and returns them sorted descending by score. The sort is stable: ties keep
// the catalog's input order.
func ScoreAll(items []domain.CatalogItem, prefs domain.PreferenceRecord) []domain.ScoredItem {
	scored := make([]domain.ScoredItem, len(items))
	for i, item := range items {
		scored[i] = Score(item, prefs)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// matchGender: 1.0 for unisex or exact match, 0 otherwise. Empty strings on
// either side are a strict mismatch; no partial credit.
func matchGender(item domain.CatalogItem, prefs domain.PreferenceRecord) float64 {
	itemGender := strings.ToLower(strings.TrimSpace(item.Gender))
	userGender := strings.ToLower(strings.TrimSpace(prefs.Gender))

	if itemGender == "unisex" {
		return 1.0
	}
	if itemGender == userGender && itemGender != "" {
		return 1.0
	}
	return 0
}

// matchWeather converts the user's 0-100 slider (hot-high) onto the item's
// 1-5 scale (cold-high) and scores 1.0 inside the item's inclusive range,
// decaying with distance outside it.
func matchWeather(item domain.CatalogItem, prefs domain.PreferenceRecord) float64 {
	// 0 (extremely cold) -> 5, 100 (very hot) -> 1
	userScale := 5 - (float64(prefs.Weather)/100)*4

	lo := float64(item.WeatherMin)
	hi := float64(item.WeatherMax)
	if userScale >= lo && userScale <= hi {
		return 1.0
	}

	var distance float64
	if userScale < lo {
		distance = lo - userScale
	} else {
		distance = userScale - hi
	}

	// Max possible distance on the 1..5 scale is 4.
	normalized := math.Min(distance/4, 1)
	return math.Max(0, 1-normalized*weatherDistancePenalty)
}

func matchLifestyle(item domain.CatalogItem, prefs domain.PreferenceRecord) float64 {
	userLifestyle := strings.ToLower(prefs.Lifestyle)

	tagged := func(want string) bool {
		for _, tag := range item.LifestyleTags {
			if strings.ToLower(tag) == want {
				return true
			}
		}
		return false
	}

	if tagged(userLifestyle) {
		return 1.0
	}
	if userLifestyle == "formal" && tagged("casual") {
		return LifestyleFormalToCasual
	}
	if userLifestyle == "casual" && tagged("formal") {
		return LifestyleCasualToFormal
	}
	if userLifestyle == "athletic" && tagged("casual") {
		return LifestyleAthleticToCasual
	}
	return LifestyleFloor
}

func matchBodyType(item domain.CatalogItem, prefs domain.PreferenceRecord) float64 {
	itemFit := strings.ToLower(item.BodyTypeFit)
	userType := strings.ToLower(prefs.BodyType)

	// "average" fit is universal.
	if itemFit == userType || itemFit == "average" {
		return 1.0
	}
	for _, similar := range bodyTypeSimilarity[userType] {
		if similar == itemFit {
			return BodyTypeAdjacent
		}
	}
	return BodyTypeFloor
}

func matchStyle(item domain.CatalogItem, prefs domain.PreferenceRecord) float64 {
	if len(prefs.Styles) == 0 {
		return StyleNeutral
	}

	matches := 0
	for _, userStyle := range prefs.Styles {
		us := strings.ToLower(userStyle)
		for _, itemStyle := range item.StyleTags {
			is := strings.ToLower(itemStyle)
			// "smart-casual" users accept anything tagged smart-*.
			if us == "smart-casual" && strings.Contains(is, "smart") {
				matches++
				break
			}
			if is == us || strings.Contains(is, us) {
				matches++
				break
			}
		}
	}

	if matches == 0 {
		return StyleNoMatch
	}

	ratio := float64(matches) / float64(len(prefs.Styles))
	if matches > 1 {
		ratio += StyleMultiBonus
	}
	return math.Min(1.0, ratio)
}

func matchSkinTone(item domain.CatalogItem, prefs domain.PreferenceRecord) float64 {
	userUndertone := Undertone(prefs.SkinTone)
	itemUndertone := strings.ToLower(item.SkinUndertone)

	if itemUndertone == userUndertone {
		return 1.0
	}
	if itemUndertone == "neutral" || userUndertone == "neutral" {
		return SkinToneNeutralCompat
	}
	return SkinToneFloor
}

// Undertone buckets the 0-100 skin tone slider: <34 cool, >66 warm,
// neutral in between.
func Undertone(skinTone int) string {
	switch {
	case skinTone < 34:
		return "cool"
	case skinTone > 66:
		return "warm"
	default:
		return "neutral"
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
