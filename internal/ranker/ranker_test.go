package ranker

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/esg-merge-cli/internal/model"
	"github.com/sells-group/esg-merge-cli/internal/similarity"
)

func envQuestion(text string) model.RawQuestion {
	return model.RawQuestion{Text: text, Category: "Environmental"}
}

func testFrameworks() []model.Framework {
	return []model.Framework{
		{
			Name:        "GRI",
			Description: "Global standards for sustainability impact reporting and disclosure.",
			Questions: []model.RawQuestion{
				envQuestion("How does your organization report on greenhouse gas emissions?"),
				envQuestion("How does your organization manage water consumption and discharge?"),
				{Text: "What is the composition of the highest governance body?", Category: "Governance"},
			},
		},
		{
			Name:        "SASB",
			Description: "Industry-specific sustainability disclosure metrics for investors.",
			Questions: []model.RawQuestion{
				envQuestion("What metrics do you use to track water consumption?"),
				envQuestion("How does your organization manage emissions reduction targets?"),
			},
		},
		{
			Name:        "TCFD",
			Description: "Climate-related financial risk disclosure recommendations.",
			Questions: []model.RawQuestion{
				envQuestion("How does your organization manage climate-related emissions risks?"),
			},
		},
	}
}

func TestRankAndSelect_GloballySorted(t *testing.T) {
	sel := RankAndSelect(testFrameworks(), 50)
	require.NotEmpty(t, sel.Selected)

	assert.True(t, sort.SliceIsSorted(sel.Selected, func(a, b int) bool {
		return sel.Selected[a].Score > sel.Selected[b].Score
	}))

	// Ranking is global: more than one framework pair contributes.
	pairs := make(map[string]bool)
	for _, c := range sel.Selected {
		pairs[c.FrameworkA+"|"+c.FrameworkB] = true
	}
	assert.Greater(t, len(pairs), 1)
}

func TestRankAndSelect_NoBelowThresholdPairs(t *testing.T) {
	sel := RankAndSelect(testFrameworks(), 50)
	for _, c := range append(sel.Selected, sel.Overflow...) {
		assert.GreaterOrEqual(t, c.Score, similarity.MinScore)
	}
}

func TestRankAndSelect_CountCap(t *testing.T) {
	sel := RankAndSelect(testFrameworks(), 2)
	assert.Len(t, sel.Selected, 2)

	all := RankAndSelect(testFrameworks(), 1000)
	if len(all.Selected) > 4 {
		// Overflow holds ranked positions count..2*count.
		sel4 := RankAndSelect(testFrameworks(), 2)
		assert.NotEmpty(t, sel4.Overflow)
		assert.LessOrEqual(t, len(sel4.Overflow), 2)
		assert.GreaterOrEqual(t, sel4.Selected[1].Score, sel4.Overflow[0].Score)
	}
}

func TestRankAndSelect_OverflowPreservesRankOrder(t *testing.T) {
	all := RankAndSelect(testFrameworks(), 1000).Selected
	if len(all) < 3 {
		t.Skip("not enough candidates for overflow")
	}

	count := len(all) / 2
	sel := RankAndSelect(testFrameworks(), count)
	require.Len(t, sel.Selected, count)
	for i, c := range sel.Overflow {
		assert.Equal(t, all[count+i].Score, c.Score)
	}
}

func TestRankAndSelect_ZeroCount(t *testing.T) {
	sel := RankAndSelect(testFrameworks(), 0)
	assert.Empty(t, sel.Selected)
	assert.Empty(t, sel.Overflow)
}

func TestRankAndSelect_NoCandidates(t *testing.T) {
	frameworks := []model.Framework{
		{Name: "A", Questions: []model.RawQuestion{{Text: "What is the capital of France?"}}},
		{Name: "B", Questions: []model.RawQuestion{{Text: "How many moons does Jupiter have?"}}},
	}
	sel := RankAndSelect(frameworks, 5)
	assert.Empty(t, sel.Selected)
}

func TestRankAndSelect_ThematicConnectionSet(t *testing.T) {
	sel := RankAndSelect(testFrameworks(), 50)
	for _, c := range sel.Selected {
		assert.NotEmpty(t, c.ThematicConnection)
	}
}

func TestRankAndSelect_Deterministic(t *testing.T) {
	a := RankAndSelect(testFrameworks(), 10)
	b := RankAndSelect(testFrameworks(), 10)
	assert.Equal(t, a, b)
}
