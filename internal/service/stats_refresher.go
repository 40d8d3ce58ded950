package service

import (
	"context"
	"fmt"
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// StatsRefresher periodically re-runs the batch aggregation and persists the
// refreshed per-rule reports, so the stats the decision gate reads stay
// current.
type StatsRefresher interface {
	Start(ctx context.Context)
	Stop()
	RefreshOnce(ctx context.Context) error
}

type statsRefresher struct {
	cfg           *config.Config
	log           *logger.Logger
	backtest      BacktestService
	ruleStatsRepo repository.RuleStatsRepository
	cron          *cron.Cron
}

func NewStatsRefresher(
	cfg *config.Config,
	log *logger.Logger,
	backtest BacktestService,
	ruleStatsRepo repository.RuleStatsRepository,
) StatsRefresher {
	return &statsRefresher{
		cfg:           cfg,
		log:           log,
		backtest:      backtest,
		ruleStatsRepo: ruleStatsRepo,
	}
}

func (s *statsRefresher) Start(ctx context.Context) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	s.cron = cron.New(cron.WithParser(parser))

	spec := s.cfg.Scheduler.StatsRefreshSpec
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RefreshOnce(ctx); err != nil {
			s.log.ErrorContext(ctx, "Scheduled rule stats refresh failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		s.log.Error("Invalid stats refresh schedule, refresher disabled",
			logger.StringField("spec", spec),
			logger.ErrorField(err))
		return
	}

	s.cron.Start()
	s.log.Info("Rule stats refresher started", logger.StringField("spec", spec))
}

func (s *statsRefresher) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RefreshOnce recomputes the per-rule reports over the full history (with
// simulated alternate entries substituted) and upserts them.
func (s *statsRefresher) RefreshOnce(ctx context.Context) error {
	result, err := s.backtest.RunBacktest(ctx, dto.BacktestRequest{WithSimulation: true})
	if err != nil {
		return fmt.Errorf("failed to recompute rule stats: %w", err)
	}

	for key, report := range result.Rules {
		if err := s.ruleStatsRepo.Upsert(ctx, key, report); err != nil {
			return fmt.Errorf("failed to persist stats for rule %s: %w", key, err)
		}
	}

	s.log.InfoContext(ctx, "Rule stats refreshed", logger.IntField("rules", len(result.Rules)))
	return nil
}
