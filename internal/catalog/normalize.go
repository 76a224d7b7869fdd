package catalog

import "strings"

// DefaultTagAliases maps sheet spellings to the onboarding vocabulary.
var DefaultTagAliases = map[string]string{
	"smart casual": "smart-casual",
}

func mergedAliases(extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return DefaultTagAliases
	}
	m := make(map[string]string, len(DefaultTagAliases)+len(extra))
	for k, v := range DefaultTagAliases {
		m[strings.ToLower(k)] = strings.ToLower(v)
	}
	for k, v := range extra {
		m[strings.ToLower(k)] = strings.ToLower(v)
	}
	return m
}

func normalizeTag(tag string, aliases map[string]string) string {
	tag = strings.ToLower(CleanText(tag))
	if alias, ok := aliases[tag]; ok {
		return alias
	}
	return tag
}

// CleanText collapses whitespace (including non-breaking spaces) and trims.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
