// Package ranker builds and ranks candidate question pairs across
// frameworks. Scoring runs over the full cross product of every unordered
// framework pair, drops rejected pairs, and ranks survivors globally by
// score rather than per framework pair.
package ranker

import (
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/esg-merge-cli/internal/model"
	"github.com/sells-group/esg-merge-cli/internal/similarity"
	"github.com/sells-group/esg-merge-cli/internal/theme"
)

// chunkSize bounds how many cross-product cells a single scoring task
// handles. Chunking exists for throughput on large catalogs only; result
// ordering does not depend on chunk boundaries.
const chunkSize = 250

// scoreWorkers bounds concurrent scoring tasks.
const scoreWorkers = 4

// Selection is the ranked output: the top candidates to merge plus an
// overflow pool for replacing candidates the merge step rejects.
type Selection struct {
	Selected []model.CandidatePair
	Overflow []model.CandidatePair
}

// RankAndSelect scores every cross-framework question pair, keeps pairs
// above the similarity threshold, sorts them globally by descending score,
// and returns the top count with an overflow pool of up to count more.
func RankAndSelect(frameworks []model.Framework, count int) Selection {
	type cell struct {
		fwA, fwB int
		qA, qB   int
	}

	var cells []cell
	conns := make(map[[2]int]string)
	for i := 0; i < len(frameworks); i++ {
		for j := i + 1; j < len(frameworks); j++ {
			conns[[2]int{i, j}] = theme.Resolve(
				frameworks[i].Name, frameworks[j].Name,
				frameworks[i].Description, frameworks[j].Description,
			)
			for a := range frameworks[i].Questions {
				for b := range frameworks[j].Questions {
					cells = append(cells, cell{fwA: i, fwB: j, qA: a, qB: b})
				}
			}
		}
	}

	scores := make([]float64, len(cells))
	var g errgroup.Group
	g.SetLimit(scoreWorkers)
	for start := 0; start < len(cells); start += chunkSize {
		end := start + chunkSize
		if end > len(cells) {
			end = len(cells)
		}
		g.Go(func() error {
			for k := start; k < end; k++ {
				c := cells[k]
				qa := frameworks[c.fwA].Questions[c.qA]
				qb := frameworks[c.fwB].Questions[c.qB]
				scores[k] = similarity.Score(qa.Text, qa.Category, qb.Text, qb.Category)
			}
			return nil
		})
	}
	_ = g.Wait() // scoring tasks never fail

	var kept []model.CandidatePair
	for k, c := range cells {
		if scores[k] <= 0 {
			continue
		}
		kept = append(kept, model.CandidatePair{
			FrameworkA:         frameworks[c.fwA].Name,
			FrameworkB:         frameworks[c.fwB].Name,
			QuestionA:          frameworks[c.fwA].Questions[c.qA],
			QuestionB:          frameworks[c.fwB].Questions[c.qB],
			Score:              scores[k],
			ThematicConnection: conns[[2]int{c.fwA, c.fwB}],
		})
	}

	// Stable sort keeps catalog order among equal scores so runs are
	// reproducible.
	sort.SliceStable(kept, func(a, b int) bool {
		return kept[a].Score > kept[b].Score
	})

	zap.L().Debug("ranked candidate pairs",
		zap.Int("scored", len(cells)),
		zap.Int("kept", len(kept)),
		zap.Int("requested", count),
	)

	sel := Selection{}
	if count <= 0 {
		return sel
	}
	if len(kept) <= count {
		sel.Selected = kept
		return sel
	}
	sel.Selected = kept[:count]
	overflowEnd := 2 * count
	if overflowEnd > len(kept) {
		overflowEnd = len(kept)
	}
	sel.Overflow = kept[count:overflowEnd]
	return sel
}
