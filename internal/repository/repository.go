package repository

import (
	"trading-journal/config"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	TradeRepo     TradeRepository
	RuleStatsRepo RuleStatsRepository
	BarRepo       BarRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	barRepo := NewBarRepository(cfg, log)

	return &Repository{
		TradeRepo:     NewTradeRepository(db),
		RuleStatsRepo: NewRuleStatsRepository(db),
		BarRepo:       NewCachedBarRepository(barRepo, inmemoryCache, cfg.Cache.DefaultExpiration),
	}, nil
}
