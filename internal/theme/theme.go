// Package theme resolves a human-readable thematic connection between two
// frameworks, used to steer the merge prompt. Resolution is deterministic:
// known-pair table, then shared description keyword, then abbreviation
// defaults, then a generic fallback.
package theme

import "strings"

// GenericConnection is the last-resort theme when nothing more specific
// applies.
const GenericConnection = "sustainability compliance and strategic performance"

// knownPairs maps specific framework pairs to curated connections. Lookup
// is attempted in both orderings.
var knownPairs = map[string]string{
	"gri|sasb":  "impact materiality and financially material sustainability metrics",
	"gri|tcfd":  "broad sustainability impact reporting and climate-related financial risk",
	"sasb|tcfd": "industry-specific metrics and climate-related financial disclosure",
	"gri|csrd":  "global impact standards and European double-materiality reporting",
	"sasb|issb": "industry metrics feeding into global investor-focused baselines",
	"tcfd|issb": "climate risk disclosure absorbed into the global baseline standards",
	"gri|cdp":   "impact reporting and environmental data disclosure",
	"cdp|tcfd":  "environmental data collection and climate risk governance",
}

// topicalKeywords is scanned in order against both framework descriptions;
// the first keyword present in both yields its theme.
var topicalKeywords = []struct {
	Keyword string
	Theme   string
}{
	{"climate", "climate-related risk and opportunity management"},
	{"emissions", "greenhouse gas accounting and reduction"},
	{"materiality", "materiality assessment and prioritization"},
	{"governance", "sustainability governance and oversight"},
	{"disclosure", "transparent sustainability disclosure"},
	{"investor", "investor-focused sustainability information"},
	{"social", "social responsibility and stakeholder welfare"},
	{"environment", "environmental stewardship and performance"},
	{"supply", "supply chain sustainability"},
	{"risk", "sustainability risk identification and management"},
}

// defaultThemes is keyed by a single framework abbreviation and applies
// when that framework appears in the pair and nothing earlier matched.
var defaultThemes = map[string]string{
	"gri":  "comprehensive impact reporting",
	"sasb": "financially material industry metrics",
	"tcfd": "climate-related financial disclosure",
	"cdp":  "environmental data transparency",
	"csrd": "regulatory sustainability reporting",
	"issb": "global sustainability disclosure baselines",
}

// Resolve returns the thematic connection for a framework pair given the
// two framework names and their catalog descriptions.
func Resolve(nameA, nameB, descA, descB string) string {
	abbrA := abbreviate(nameA)
	abbrB := abbreviate(nameB)

	if t, ok := knownPairs[abbrA+"|"+abbrB]; ok {
		return t
	}
	if t, ok := knownPairs[abbrB+"|"+abbrA]; ok {
		return t
	}

	lowerA := strings.ToLower(descA)
	lowerB := strings.ToLower(descB)
	if lowerA != "" && lowerB != "" {
		for _, tk := range topicalKeywords {
			if strings.Contains(lowerA, tk.Keyword) && strings.Contains(lowerB, tk.Keyword) {
				return tk.Theme
			}
		}
	}

	if t, ok := defaultThemes[abbrA]; ok {
		return t
	}
	if t, ok := defaultThemes[abbrB]; ok {
		return t
	}

	return GenericConnection
}

// abbreviate reduces a framework name to its short form: the first
// whitespace token, lowercased. "GRI Standards" and "gri" both map to
// "gri".
func abbreviate(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
