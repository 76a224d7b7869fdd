package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"stylist-engine/internal/domain"
)

// The inventory sheet exports with a decorative multi-line header; real data
// rows have all 19 columns. Rows shorter than this are skipped.
const minFields = 15

// Column order of the inventory export.
const (
	colDescription = iota
	colCategory
	colType
	colColor
	colItemLink
	colStyleID
	colMainCategory
	colSubCategory
	colGender
	colBaseColor
	colColorFamily
	colWeatherMin
	colWeatherMax
	colStyleTags
	colLifestyleTags
	colBodyTypeFit
	colSkinUndertone
	colFormalityScore
	colLayerLevel
)

var headerKeyword = regexp.MustCompile(`(?i)^(description|category|type|color|item|style|main|sub|gender|base|weather|lifestyle|body|skin|formality|layer|hot|cold)$`)

// CSVSource loads catalog items from the inventory CSV export.
type CSVSource struct {
	Path string

	// TagAliases maps raw style tags to the normalized vocabulary
	// ("smart casual" -> "smart-casual"). Merged over DefaultTagAliases.
	TagAliases map[string]string
}

func (s *CSVSource) Load(ctx context.Context) ([]domain.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // header lines are ragged
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog csv %s: %w", s.Path, err)
	}

	aliases := mergedAliases(s.TagAliases)

	var items []domain.CatalogItem
	skipped := 0
	for _, rec := range records {
		if !looksLikeData(rec) {
			skipped++
			continue
		}
		items = append(items, itemFromRecord(rec, aliases))
	}

	log.Printf("[catalog] loaded items=%d skipped_rows=%d path=%s", len(items), skipped, s.Path)
	return items, nil
}

// looksLikeData separates inventory rows from the export's decorative header
// lines (emoji banners, column labels, legend rows).
func looksLikeData(rec []string) bool {
	if len(rec) < minFields {
		return false
	}
	first := strings.TrimSpace(rec[colDescription])
	if len(first) < 3 {
		return false
	}
	if headerKeyword.MatchString(first) {
		return false
	}
	// A real description has letters and is not a number/dash legend.
	hasLetter := strings.IndexFunc(first, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
	if !hasLetter {
		return false
	}
	joined := strings.ToLower(strings.Join(rec, ","))
	for _, marker := range []string{"lifestyle_tags", "style_tags", "weather_min", "weather_max"} {
		if strings.Contains(joined, marker) {
			return false
		}
	}
	return true
}

func itemFromRecord(rec []string, aliases map[string]string) domain.CatalogItem {
	field := func(i int) string {
		if i < len(rec) {
			return CleanText(rec[i])
		}
		return ""
	}

	return domain.CatalogItem{
		Description:    field(colDescription),
		Category:       field(colCategory),
		Type:           field(colType),
		Color:          field(colColor),
		ItemLink:       field(colItemLink),
		StyleID:        field(colStyleID),
		MainCategory:   field(colMainCategory),
		SubCategory:    field(colSubCategory),
		Gender:         field(colGender),
		BaseColor:      field(colBaseColor),
		ColorFamily:    field(colColorFamily),
		WeatherMin:     atoiDefault(field(colWeatherMin), 3),
		WeatherMax:     atoiDefault(field(colWeatherMax), 5),
		StyleTags:      parseTagList(field(colStyleTags), aliases),
		LifestyleTags:  parseTagList(field(colLifestyleTags), aliases),
		BodyTypeFit:    defaultStr(field(colBodyTypeFit), "Average"),
		SkinUndertone:  defaultStr(field(colSkinUndertone), "Neutral"),
		FormalityScore: atoiDefault(field(colFormalityScore), 5),
		LayerLevel:     atoiDefault(field(colLayerLevel), 0),
	}
}

// parseTagList accepts either a JSON array cell (`["Classic","Minimal"]`) or
// a bare comma-separated cell (`Classic, Minimal`).
func parseTagList(cell string, aliases map[string]string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "[]" {
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(cell), &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, t := range arr {
			if n := normalizeTag(t, aliases); n != "" {
				out = append(out, n)
			}
		}
		return out
	}

	var out []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.Trim(strings.TrimSpace(part), `[]"`)
		if n := normalizeTag(part, aliases); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func defaultStr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
