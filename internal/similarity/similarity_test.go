package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	griEmissions = "How does your organization report on greenhouse gas emissions?"
	sasbWater    = "What metrics do you use to track water consumption?"
)

func TestScore_Symmetry(t *testing.T) {
	pairs := [][4]string{
		{griEmissions, "Environmental", sasbWater, "Environmental"},
		{griEmissions, "", sasbWater, ""},
		{"How does the board oversee climate risk?", "Governance", "How does the board manage climate exposure?", "Governance"},
		{"", "", "", ""},
	}

	for _, p := range pairs {
		ab := Score(p[0], p[1], p[2], p[3])
		ba := Score(p[2], p[3], p[0], p[1])
		assert.Equal(t, ab, ba)
	}
}

func TestScore_RejectsBelowThreshold(t *testing.T) {
	// No shared category, no lexical or group overlap.
	score := Score(
		"What is the capital of France?", "",
		"How many employees signed the petition?", "",
	)
	assert.Zero(t, score)
}

func TestScore_NeverBetweenZeroAndThreshold(t *testing.T) {
	texts := []string{
		griEmissions,
		sasbWater,
		"How does the board oversee climate-related risks?",
		"Describe your waste management processes.",
		"What targets exist for emissions reduction?",
	}
	for _, a := range texts {
		for _, b := range texts {
			s := Score(a, "", b, "")
			if s != 0 {
				assert.GreaterOrEqual(t, s, MinScore)
			}
		}
	}
}

func TestScore_CategoryMatch(t *testing.T) {
	without := Score(griEmissions, "", sasbWater, "")
	with := Score(griEmissions, "Environmental", sasbWater, "environmental")

	// The category bonus lifts this topically-related pair over the
	// threshold; without it the lexical signal alone is insufficient.
	assert.Zero(t, without)
	assert.GreaterOrEqual(t, with, MinScore)
}

func TestScore_EnvironmentalGroupOverlap(t *testing.T) {
	// No exact shared token, but both carry environmental-group tokens;
	// with matching categories the pair is accepted.
	score := Score(griEmissions, "Environmental", sasbWater, "Environmental")
	assert.GreaterOrEqual(t, score, MinScore)
}

func TestScore_PrefixAndExactOverlap(t *testing.T) {
	a := "How does your organization manage climate risk exposure?"
	b := "How does your organization monitor climate risk indicators?"

	score := Score(a, "Risk", b, "Risk")
	assert.GreaterOrEqual(t, score, MinScore)

	// Removing the shared prefix must strictly lower the score.
	bNoPrefix := "In what way do you monitor climate risk indicators?"
	lower := Score(a, "Risk", bNoPrefix, "Risk")
	if lower > 0 {
		assert.Greater(t, score, lower)
	}
}

func TestPatternMatch(t *testing.T) {
	a := "How does management ensure compliance with policy?"
	b := "How does the committee ensure oversight of controls?"
	assert.True(t, patternMatch(a, b))

	assert.False(t, patternMatch(a, "What water targets exist?"))
}

func TestPatternMatch_Symmetric(t *testing.T) {
	a := "How does management ensure compliance?"
	b := "What steps are taken to ensure accuracy? How does it work?"
	assert.Equal(t, patternMatch(a, b), patternMatch(b, a))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(0))
	assert.InDelta(t, 0.4, Normalize(10), 0.001)
	assert.Equal(t, 1.0, Normalize(25))
	assert.Equal(t, 1.0, Normalize(100))
	assert.Equal(t, 0.0, Normalize(-3))
}

func TestOverlapScore_EmptyTokens(t *testing.T) {
	assert.Zero(t, overlapScore(nil, nil))
}
