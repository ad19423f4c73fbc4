package main

import (
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/esg-merge-cli/internal/catalog"
	"github.com/sells-group/esg-merge-cli/internal/merger"
	"github.com/sells-group/esg-merge-cli/pkg/anthropic"
	"github.com/sells-group/esg-merge-cli/pkg/completion"
)

// loadCatalog opens the configured framework document.
func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, eris.Wrap(err, "load catalog")
	}
	return cat, nil
}

// initGenerator builds the configured text-generation provider.
func initGenerator() (merger.Generator, error) {
	switch cfg.Generator.Provider {
	case "", "completion":
		var limiter *rate.Limiter
		if cfg.Generator.RequestsPerSec > 0 {
			limiter = rate.NewLimiter(rate.Limit(cfg.Generator.RequestsPerSec), 1)
		}
		return completion.NewClient(cfg.Generator.Key,
			completion.WithBaseURL(cfg.Generator.BaseURL),
			completion.WithModel(cfg.Generator.Model),
			completion.WithLimiter(limiter),
		), nil
	case "anthropic":
		return anthropic.NewClient(cfg.Anthropic.Key,
			anthropic.WithModel(cfg.Anthropic.Model),
		), nil
	default:
		return nil, eris.Errorf("unknown generator provider %q", cfg.Generator.Provider)
	}
}

// initMerger wires the orchestrator from configuration.
func initMerger() (*merger.Merger, error) {
	gen, err := initGenerator()
	if err != nil {
		return nil, err
	}
	return merger.New(gen, merger.Config{
		Workers:     cfg.Merge.Workers,
		CallTimeout: time.Duration(cfg.Merge.CallTimeoutSecs) * time.Second,
		Temperature: cfg.Merge.Temperature,
		MaxTokens:   cfg.Merge.MaxTokens,
		TopP:        cfg.Merge.TopP,
		CacheSize:   cfg.Merge.CacheSize,
	}), nil
}
