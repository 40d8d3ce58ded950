package service

import (
	"trading-journal/config"
	"trading-journal/internal/engine"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
)

type Service struct {
	AdvisorService  AdvisorService
	BacktestService BacktestService
	StatsRefresher  StatsRefresher
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
) *Service {
	registry := engine.DefaultRegistry()
	simulator := engine.NewSimulator(log, repo.BarRepo, cfg.Simulation.WindowHours, cfg.Simulation.LossCapUSD)

	advisorService := NewAdvisorService(cfg, log, registry, repo.TradeRepo, repo.RuleStatsRepo)
	backtestService := NewBacktestService(log, repo.TradeRepo, registry, simulator)
	statsRefresher := NewStatsRefresher(cfg, log, backtestService, repo.RuleStatsRepo)

	return &Service{
		AdvisorService:  advisorService,
		BacktestService: backtestService,
		StatsRefresher:  statsRefresher,
	}
}
