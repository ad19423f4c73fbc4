// Package similarity scores how mergeable two framework questions are.
//
// The score is an additive blend of five signals: category match, lexical
// overlap weighted by semantic group membership, a group-level topical
// bonus, a structural prefix match, and a question-pattern bonus. Scores
// below MinScore are rejected outright; a rejected pair is reported as
// score zero and never becomes a candidate.
package similarity

import (
	"strings"

	"github.com/sells-group/esg-merge-cli/internal/keywords"
)

// MinScore is the acceptance threshold. It bounds false positives from
// generic ESG vocabulary that would otherwise make every question pair
// look related.
const MinScore = 10.0

// scorerStopwords is the scorer's own stopword list. It is larger than the
// extractor's and the two deliberately diverge; do not unify them.
var scorerStopwords = map[string]bool{
	"does": true, "your": true, "what": true, "this": true, "that": true,
	"with": true, "from": true, "have": true, "been": true, "will": true,
	"which": true, "their": true, "when": true, "where": true, "would": true,
	"should": true, "could": true, "organization": true, "organizations": true,
	"company": true, "describe": true, "about": true, "these": true,
	"those": true, "there": true, "into": true, "such": true, "than": true,
	"then": true, "them": true, "they": true, "also": true, "each": true,
	"other": true, "more": true, "most": true, "some": true, "within": true,
	"over": true, "under": true, "between": true, "through": true,
	"during": true, "across": true, "being": true, "both": true,
	"were": true, "while": true, "including": true, "please": true,
}

// questionPatterns are fixed 3-token shapes common in ESG questionnaires.
// Matching any one of them adds a single flat bonus; the patterns are not
// ranked against each other.
var questionPatterns = [][3]string{
	{"how", "does", "ensure"},
	{"what", "measures", "place"},
	{"how", "do", "manage"},
	{"what", "processes", "identify"},
	{"how", "does", "report"},
	{"what", "approach", "risk"},
	{"how", "do", "monitor"},
	{"what", "steps", "taken"},
}

const (
	categoryBonus   = 8.0
	exactGroupScore = 2.0
	exactPlainScore = 1.0
	groupOnlyBonus  = 1.5
	overlapScale    = 20.0
	prefixBonus     = 2.0
	patternBonus    = 1.0
)

// Score computes the similarity between two questions given their text and
// optional categories. The result is symmetric in its arguments. Pairs
// scoring under MinScore return 0.
func Score(textA, categoryA, textB, categoryB string) float64 {
	score := 0.0

	if categoryA != "" && categoryB != "" && strings.EqualFold(categoryA, categoryB) {
		score += categoryBonus
	}

	tokensA := scorerTokens(textA)
	tokensB := scorerTokens(textB)
	score += overlapScore(tokensA, tokensB)

	if prefixMatch(textA, textB) {
		score += prefixBonus
	}

	if patternMatch(textA, textB) {
		score += patternBonus
	}

	if score < MinScore {
		return 0
	}
	return score
}

// Normalize maps a raw score onto [0,1] for downstream confidence checks.
// MinScore lands at 0.4; scores at or beyond 25 saturate at 1.
func Normalize(score float64) float64 {
	n := score / 25.0
	if n > 1 {
		return 1
	}
	if n < 0 {
		return 0
	}
	return n
}

// scorerTokens tokenizes with the scorer's stopword list, keeping tokens
// longer than three characters, deduplicated.
func scorerTokens(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range keywords.Tokenize(text) {
		if len(tok) <= 3 || scorerStopwords[tok] {
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

// overlapScore blends exact lexical overlap with group-level topical
// overlap. Exact shared tokens score 2 when they carry a semantic group,
// 1 otherwise. Groups represented on both sides without an exact shared
// token add 1.5 apiece. The raw sum is normalized by combined token count
// and rescaled so overlap dominates short questions less.
func overlapScore(tokensA, tokensB []string) float64 {
	total := len(tokensA) + len(tokensB)
	if total == 0 {
		return 0
	}

	inB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		inB[t] = true
	}

	raw := 0.0
	matchedGroups := make(map[string]bool)
	for _, t := range tokensA {
		if !inB[t] {
			continue
		}
		if g, ok := keywords.GroupOf(t); ok {
			raw += exactGroupScore
			matchedGroups[g] = true
		} else {
			raw += exactPlainScore
		}
	}

	groupsA := keywords.Groups(tokensA)
	inGroupsB := make(map[string]bool)
	for _, g := range keywords.Groups(tokensB) {
		inGroupsB[g] = true
	}
	for _, g := range groupsA {
		if inGroupsB[g] && !matchedGroups[g] {
			raw += groupOnlyBonus
		}
	}

	return raw / float64(total) * overlapScale
}

// prefixMatch reports whether the first three whitespace tokens of both
// questions are identical, ignoring case.
func prefixMatch(textA, textB string) bool {
	a := strings.Fields(strings.ToLower(textA))
	b := strings.Fields(strings.ToLower(textB))
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

// patternMatch reports whether any fixed question pattern has all three of
// its tokens present in both questions. Only the first matching pattern
// counts; the bonus is flat regardless of which pattern matched.
func patternMatch(textA, textB string) bool {
	lowerA := strings.ToLower(textA)
	lowerB := strings.ToLower(textB)
	for _, p := range questionPatterns {
		if containsAll(lowerA, p) && containsAll(lowerB, p) {
			return true
		}
	}
	return false
}

func containsAll(text string, pattern [3]string) bool {
	for _, tok := range pattern {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
