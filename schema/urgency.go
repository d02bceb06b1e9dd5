package schema

import "strings"

// Urgency is one of four ordered severity tiers.
type Urgency string

const (
	UrgencyCritical Urgency = "Critical (Medical Emergency)"
	UrgencyHigh     Urgency = "High (Trapped/Missing)"
	UrgencyMedium   Urgency = "Medium (Safe but Separated)"
	UrgencyLow      Urgency = "Low (Information Only)"
)

// AllUrgencies from most to least severe; also the keyboard display order.
var AllUrgencies = []Urgency{
	UrgencyCritical,
	UrgencyHigh,
	UrgencyMedium,
	UrgencyLow,
}

var urgencyGlyphs = map[Urgency]string{
	UrgencyCritical: "🔴",
	UrgencyHigh:     "🟠",
	UrgencyMedium:   "🟡",
	UrgencyLow:      "🟢",
}

func (u Urgency) Glyph() string {
	return urgencyGlyphs[u]
}

// ParseUrgency matches a tier label ignoring case.
func ParseUrgency(label string) (Urgency, bool) {
	for _, u := range AllUrgencies {
		if strings.EqualFold(string(u), strings.TrimSpace(label)) {
			return u, true
		}
	}
	return "", false
}

// Keyword sets scanned in severity order; the first matching tier wins.
var urgencyKeywords = []struct {
	tier     Urgency
	keywords []string
}{
	{UrgencyCritical, []string{"critical", "emergency", "urgent", "life threatening", "life-threatening"}},
	{UrgencyHigh, []string{"high", "trapped", "injured"}},
	{UrgencyMedium, []string{"medium", "safe"}},
}

// ClassifyUrgency returns the explicit tier unchanged when one was chosen via
// the guided flow. The keyword fallback only exists for legacy free-form
// submissions that never saw the urgency keyboard.
func ClassifyUrgency(explicit Urgency, freeText string) Urgency {
	if explicit != "" {
		return explicit
	}

	text := strings.ToLower(freeText)
	for _, set := range urgencyKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(text, kw) {
				return set.tier
			}
		}
	}
	return UrgencyLow
}
