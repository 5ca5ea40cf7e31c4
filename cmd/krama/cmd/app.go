package cmd

import (
	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/internal/store"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/cache"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/config"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

// serviceOptions adjusts what newService wires up beyond the config
type serviceOptions struct {
	lexiconPath string
	noHistory   bool
	noCache     bool
}

// newService builds the analysis service from cfg. The caller closes it.
func newService(cfg *config.Config, logger *logging.Logger, opts serviceOptions) (*service.Service, error) {
	svcCfg := service.DefaultConfig()
	svcCfg.Logger = logger
	svcCfg.LexiconPath = cfg.Lexicon.Path
	if opts.lexiconPath != "" {
		svcCfg.LexiconPath = opts.lexiconPath
	}
	svcCfg.MaxInputLength = cfg.Analysis.MaxInputLength
	svcCfg.BatchConcurrency = cfg.Analysis.BatchConcurrency
	svcCfg.MaxBatchSize = cfg.Analysis.MaxBatchSize
	svcCfg.AllowTrailing = cfg.Analysis.AllowTrailing
	svcCfg.DisableSuggestions = !cfg.Analysis.Suggestions

	if cfg.Cache.Enabled && !opts.noCache {
		svcCfg.Cache = cache.NewResultCache(cache.Config{
			MaxItems: cfg.Cache.MaxItems,
			TTL:      cfg.Cache.TTL.Duration,
		})
	}

	if cfg.History.Enabled && !opts.noHistory {
		st, err := store.NewSQLiteStore(store.Config{Path: cfg.History.Path})
		if err != nil {
			if svcCfg.Cache != nil {
				svcCfg.Cache.Close()
			}
			return nil, err
		}
		svcCfg.Store = st
	}

	svc, err := service.NewService(svcCfg)
	if err != nil {
		if svcCfg.Store != nil {
			svcCfg.Store.Close()
		}
		if svcCfg.Cache != nil {
			svcCfg.Cache.Close()
		}
		return nil, err
	}
	return svc, nil
}
