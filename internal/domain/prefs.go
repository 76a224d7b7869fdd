package domain

// PreferenceRecord is the normalized user input vector driving one ranking
// request. The caller validates ranges and vocabulary before invocation;
// scoring degrades gracefully on anything it does not recognize.
type PreferenceRecord struct {
	Gender    string   `json:"gender"`    // "male" | "female", lowercase
	Weather   int      `json:"weather"`   // 0-100 slider, 0 = extremely cold, 100 = very hot
	Lifestyle string   `json:"lifestyle"` // "formal" | "casual" | "athletic"
	BodyType  string   `json:"bodyType"`  // slim/athletic/average/muscular/curvy/plus
	Height    int      `json:"height"`    // cm, kept for profile parity, not scored
	SkinTone  int      `json:"skinTone"`  // 0-100 slider, mapped to an undertone bucket
	Styles    []string `json:"styles"`    // normalized style keywords, may be empty
}
