// Package merger orchestrates the question-merge pipeline: candidate
// selection, bounded-concurrency merge calls against a text-generation
// service, response validation and repair, and deterministic fallbacks.
package merger

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/esg-merge-cli/internal/model"
	"github.com/sells-group/esg-merge-cli/internal/ranker"
	"github.com/sells-group/esg-merge-cli/internal/resilience"
	"github.com/sells-group/esg-merge-cli/internal/similarity"
	"github.com/sells-group/esg-merge-cli/pkg/completion"
)

// Sentinel errors surfaced to callers. Per-pair failures never surface:
// they are absorbed into fallbacks or dropped pairs.
var (
	ErrInsufficientFrameworks = eris.New("merger: at least two distinct frameworks are required")
	ErrNoQuestionsGenerated   = eris.New("merger: no merged questions could be generated")
)

const (
	defaultWorkers     = 5
	defaultCallTimeout = 5 * time.Second
	defaultMaxTokens   = 150
	defaultTemperature = 0.7
	defaultCacheSize   = 100

	// highSimilarity is the normalized score above which an invalid model
	// response short-circuits to the longer original instead of burning a
	// second service call.
	highSimilarity = 0.8
)

// Generator is the text-generation surface the orchestrator consumes.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, p completion.Params) (string, error)
}

// Config tunes the orchestrator.
type Config struct {
	// Workers bounds concurrent in-flight merge calls.
	Workers int
	// CallTimeout races each service call; losing the race fails the pair,
	// not the batch.
	CallTimeout time.Duration
	Temperature float64
	MaxTokens   int
	TopP        float64
	// CacheSize bounds the per-instance merge result cache.
	CacheSize int
}

// Merger drives merge generation for one session. Each instance owns its
// result cache and entropy source; instances do not share state.
type Merger struct {
	gen   Generator
	cfg   Config
	cache *resultCache
	retry resilience.RetryConfig

	randMu sync.Mutex
	rand   *rand.Rand
}

// Option configures a Merger.
type Option func(*Merger)

// WithSeed makes emoji and connector selection reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Merger) {
		m.rand = rand.New(rand.NewPCG(seed, seed))
	}
}

// New creates a Merger around a text-generation provider.
func New(gen Generator, cfg Config, opts ...Option) *Merger {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	m := &Merger{
		gen:   gen,
		cfg:   cfg,
		cache: newResultCache(cfg.CacheSize),
		retry: resilience.DefaultRetryConfig(),
		rand:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Generate is the public operation: rank cross-framework question pairs,
// merge the best count of them, and backfill once from the overflow pool
// when merges fail. Requires at least two distinct framework names.
func (m *Merger) Generate(ctx context.Context, frameworks []model.Framework, count int) ([]model.MergedQuestion, error) {
	if distinctNames(frameworks) < 2 {
		return nil, ErrInsufficientFrameworks
	}
	if count <= 0 {
		return nil, nil
	}

	sel := ranker.RankAndSelect(frameworks, count)
	if len(sel.Selected) == 0 {
		return nil, ErrNoQuestionsGenerated
	}

	log := zap.L().With(zap.Int("requested", count))
	log.Info("merging candidate pairs",
		zap.Int("selected", len(sel.Selected)),
		zap.Int("overflow", len(sel.Overflow)),
	)

	merged := m.mergeBatch(ctx, sel.Selected, count)
	if len(merged) < count && len(sel.Overflow) > 0 {
		log.Debug("backfilling from overflow pool",
			zap.Int("produced", len(merged)),
			zap.Int("missing", count-len(merged)),
		)
		merged = append(merged, m.mergeBatch(ctx, sel.Overflow, count-len(merged))...)
	}

	if len(merged) == 0 {
		return nil, ErrNoQuestionsGenerated
	}
	log.Info("merge run complete", zap.Int("produced", len(merged)))
	return merged, nil
}

// mergeBatch merges pairs with bounded concurrency, preserving submission
// order among results and cancelling remaining work once need is met.
func (m *Merger) mergeBatch(ctx context.Context, pairs []model.CandidatePair, need int) []model.MergedQuestion {
	if need <= 0 || len(pairs) == 0 {
		return nil
	}

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*model.MergedQuestion, len(pairs))
	var produced atomic.Int64

	g, gctx := errgroup.WithContext(batchCtx)
	g.SetLimit(m.cfg.Workers)
	for i, pair := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if mq := m.mergeOne(gctx, pair, i); mq != nil {
				results[i] = mq
				if produced.Add(1) >= int64(need) {
					cancel()
				}
			}
			return nil
		})
	}
	_ = g.Wait() // workers absorb their own failures

	out := make([]model.MergedQuestion, 0, need)
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, *r)
		if len(out) == need {
			break
		}
	}
	return out
}

// mergeOne merges a single candidate pair. It returns nil when the pair
// cannot produce a valid merged question; failures never propagate.
func (m *Merger) mergeOne(ctx context.Context, pair model.CandidatePair, index int) *model.MergedQuestion {
	log := zap.L().With(
		zap.Int("pair", index),
		zap.String("framework_a", pair.FrameworkA),
		zap.String("framework_b", pair.FrameworkB),
	)

	cleanA := cleanText(pair.QuestionA.Text)
	cleanB := cleanText(pair.QuestionB.Text)
	if cleanA == "" || cleanB == "" {
		return nil
	}

	// Identical questions need no synthesis and no service call.
	if normalizeForCompare(cleanA) == normalizeForCompare(cleanB) {
		log.Debug("identical question short-circuit")
		return m.buildMerged(pair, cleanA, false)
	}

	score := similarity.Score(cleanA, pair.QuestionA.Category, cleanB, pair.QuestionB.Category)
	norm := similarity.Normalize(score)

	text, fromModel := m.generateText(ctx, pair, cleanA, cleanB, norm, log)

	mq := m.buildMerged(pair, text, fromModel)
	if mq == nil {
		log.Debug("merged text failed final validation, dropping pair")
	}
	return mq
}

// generateText runs the service call and fallback chain, returning merge
// text plus whether it came from the model.
func (m *Merger) generateText(ctx context.Context, pair model.CandidatePair, cleanA, cleanB string, norm float64, log *zap.Logger) (string, bool) {
	key := cacheKey(pair.FrameworkA, pair.FrameworkB, cleanA, cleanB, pair.ThematicConnection, pair.Score)
	if cached, ok := m.cache.get(key); ok {
		log.Debug("merge cache hit")
		return cached, true
	}

	text, err := m.completeWithTimeout(ctx, mergePrompt(
		pair.FrameworkA, pair.FrameworkB, cleanA, cleanB, pair.ThematicConnection, norm,
	))
	if err == nil && validMergeResponse(text, cleanA, cleanB) {
		text = strings.TrimSpace(text)
		m.cache.put(key, text)
		return text, true
	}
	if err != nil {
		log.Debug("merge call failed", zap.Error(err))
	}

	// Very similar pairs aren't worth a second call: the longer original
	// already covers both.
	if norm > highSimilarity {
		return longerOf(cleanA, cleanB), false
	}

	if fb := m.fallbackGenerate(ctx, cleanA, cleanB); fb.Merged && validMergeResponse(fb.Text, cleanA, cleanB) {
		m.cache.put(key, fb.Text)
		return fb.Text, true
	}

	return longerOf(cleanA, cleanB), false
}

// completeWithTimeout races a single service call against the per-call
// timeout, retrying transient failures within that budget. A lost race
// counts as a failed call for this pair only.
func (m *Merger) completeWithTimeout(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()

	var text string
	err := resilience.Do(callCtx, m.retry, func(ctx context.Context) error {
		t, err := m.gen.Complete(ctx, systemPrompt, prompt, m.params())
		if err != nil {
			return err
		}
		text = t
		return nil
	})
	return text, err
}

func (m *Merger) params() completion.Params {
	return completion.Params{
		Temperature: m.cfg.Temperature,
		MaxTokens:   m.cfg.MaxTokens,
		TopP:        m.cfg.TopP,
	}
}

// buildMerged finalizes merge text into a MergedQuestion. Returns nil when
// the finalized text fails format validation.
func (m *Merger) buildMerged(pair model.CandidatePair, text string, fromModel bool) *model.MergedQuestion {
	final, ok := finalize(text, m.pickEmoji())
	if !ok {
		return nil
	}

	category := ""
	if pair.QuestionA.Category != "" && strings.EqualFold(pair.QuestionA.Category, pair.QuestionB.Category) {
		category = pair.QuestionA.Category
	}

	return &model.MergedQuestion{
		ID:   uuid.NewString(),
		Text: final,
		FrameworkIDs: [2]string{
			pair.FrameworkA,
			pair.FrameworkB,
		},
		OriginalQuestions: [2]model.SourceQuestion{
			{
				Text:      pair.QuestionA.Text,
				Framework: pair.FrameworkA,
				Category:  pair.QuestionA.Category,
				Ref:       pair.QuestionA.Ref,
			},
			{
				Text:      pair.QuestionB.Text,
				Framework: pair.FrameworkB,
				Category:  pair.QuestionB.Category,
				Ref:       pair.QuestionB.Ref,
			},
		},
		Emoji:            strings.SplitN(final, " ", 2)[0],
		Category:         category,
		Ref:              mergedRef(pair),
		CreatedAt:        time.Now().UTC(),
		GeneratedByModel: fromModel,
	}
}

// mergedRef combines the source references, falling back to the framework
// pair when neither source carries one.
func mergedRef(pair model.CandidatePair) string {
	var parts []string
	if pair.QuestionA.Ref != "" {
		parts = append(parts, pair.QuestionA.Ref)
	}
	if pair.QuestionB.Ref != "" {
		parts = append(parts, pair.QuestionB.Ref)
	}
	if len(parts) == 0 {
		return pair.FrameworkA + "+" + pair.FrameworkB
	}
	return strings.Join(parts, "/")
}

func (m *Merger) pickEmoji() string {
	return Emojis[m.intN(len(Emojis))]
}

func (m *Merger) intN(n int) int {
	m.randMu.Lock()
	defer m.randMu.Unlock()
	return m.rand.IntN(n)
}

func distinctNames(frameworks []model.Framework) int {
	seen := make(map[string]bool)
	for _, fw := range frameworks {
		name := strings.ToLower(strings.TrimSpace(fw.Name))
		if name != "" {
			seen[name] = true
		}
	}
	return len(seen)
}
