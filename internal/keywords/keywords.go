// Package keywords tokenizes question text and classifies tokens into
// fixed ESG semantic groups used by the similarity scorer and the merge
// validator.
package keywords

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// extractStopwords is the extractor's own stopword list. It is deliberately
// smaller than the scorer's list; the two lists diverge and must stay
// separate because unifying them changes match counts downstream.
var extractStopwords = map[string]bool{
	"does": true, "your": true, "what": true, "this": true, "that": true,
	"with": true, "from": true, "have": true, "been": true, "will": true,
	"which": true, "their": true,
}

// GroupOrder fixes the iteration order for semantic group classification.
// A token belongs to at most one group: the first group whose term list
// contains it wins.
var GroupOrder = []string{
	"governance",
	"risk",
	"environmental",
	"social",
	"process",
	"performance",
	"action",
	"deficiency",
	"reporting",
}

// groupTerms maps each semantic group to its hand-curated term list.
var groupTerms = map[string][]string{
	"governance": {
		"board", "governance", "oversight", "committee", "accountability",
		"ethics", "ethical", "compliance", "policy", "policies",
		"leadership", "audit", "controls", "integrity",
	},
	"risk": {
		"risk", "risks", "exposure", "mitigation", "threat", "threats",
		"vulnerability", "resilience", "scenario", "scenarios",
		"likelihood", "uncertainty",
	},
	"environmental": {
		"emissions", "carbon", "greenhouse", "climate", "energy", "water",
		"waste", "biodiversity", "pollution", "recycling", "renewable",
		"environmental", "consumption", "footprint", "decarbonization",
	},
	"social": {
		"employee", "employees", "workforce", "diversity", "inclusion",
		"community", "communities", "human", "rights", "labor", "safety",
		"health", "wellbeing", "stakeholder", "stakeholders",
	},
	"process": {
		"process", "processes", "procedure", "procedures", "system",
		"systems", "methodology", "approach", "framework", "frameworks",
		"implementation", "integration",
	},
	"performance": {
		"performance", "metrics", "targets", "indicators", "measurement",
		"progress", "results", "outcomes", "efficiency", "benchmarks",
		"goals", "track",
	},
	"action": {
		"implement", "implemented", "manage", "managed", "ensure",
		"establish", "conduct", "monitor", "reduce", "improve", "address",
		"mitigate",
	},
	"deficiency": {
		"gaps", "deficiencies", "weaknesses", "failures", "noncompliance",
		"violations", "incidents", "breaches", "shortfalls",
	},
	"reporting": {
		"report", "reports", "reporting", "disclose", "disclosure",
		"disclosures", "transparency", "communication", "documentation",
		"published", "statements",
	},
}

// tokenGroup is the precomputed token → group index, built in GroupOrder so
// first-match-wins holds even if a term ever appears in two lists.
var tokenGroup = func() map[string]string {
	m := make(map[string]string)
	for _, g := range GroupOrder {
		for _, term := range groupTerms[g] {
			if _, ok := m[term]; !ok {
				m[term] = g
			}
		}
	}
	return m
}()

var nonWord = regexp.MustCompile(`[^a-z0-9\s]+`)

// stripDiacritics folds accented characters to their base form so catalog
// text in mixed encodings tokenizes consistently.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokenize lowercases text, folds diacritics, strips punctuation, and
// splits on whitespace. Empty input yields no tokens.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	if folded, _, err := transform.String(stripDiacritics, lower); err == nil {
		lower = folded
	}
	cleaned := nonWord.ReplaceAllString(lower, " ")
	return strings.Fields(cleaned)
}

// Extract returns the keyword set of a question: tokens longer than three
// characters that are not extractor stopwords, deduplicated in first-seen
// order.
func Extract(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range Tokenize(text) {
		if len(tok) <= 3 || extractStopwords[tok] {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// GroupOf classifies a single token into its semantic group.
func GroupOf(token string) (string, bool) {
	g, ok := tokenGroup[token]
	return g, ok
}

// Groups returns the set of semantic groups represented in tokens, in
// GroupOrder.
func Groups(tokens []string) []string {
	present := make(map[string]bool)
	for _, tok := range tokens {
		if g, ok := tokenGroup[tok]; ok {
			present[g] = true
		}
	}
	var out []string
	for _, g := range GroupOrder {
		if present[g] {
			out = append(out, g)
		}
	}
	return out
}
