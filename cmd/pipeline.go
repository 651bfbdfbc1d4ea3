package cmd

import (
	"fmt"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/aggregator"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/ai"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/cache"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/config"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/feed"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
)

// pipeline wires the aggregation stack from config.
type pipeline struct {
	cfg    *config.Config
	hybrid *aggregator.Hybrid
	claude *ai.Client
}

func buildPipeline(metrics *observability.Metrics) (*pipeline, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})

	rss := feed.NewAggregator(cfg, feed.NewFeedParser(), metrics)
	claude := ai.New(cfg, metrics)
	return &pipeline{
		cfg:    cfg,
		hybrid: aggregator.NewHybrid(cfg, rss, claude, metrics),
		claude: claude,
	}, nil
}

// openStore builds the snapshot store selected in config. The returned
// closer is a no-op for the memory backend.
func openStore(cfg *config.Config) (cache.Store, func() error, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryStore(), func() error { return nil }, nil
	case "sqlite":
		s, err := cache.OpenSQLite(config.CachePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "redis":
		s, err := cache.NewRedisStore(cfg.Cache.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
