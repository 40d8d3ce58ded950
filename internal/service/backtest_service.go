package service

import (
	"context"
	"trading-journal/internal/dto"
	"trading-journal/internal/engine"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"
)

// BacktestService runs the batch backtest: merge trade history with
// annotations, optionally substitute rule-specific simulated outcomes,
// aggregate per rule and emit the comparison report.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error)
}

type backtestService struct {
	log       *logger.Logger
	tradeRepo repository.TradeRepository
	registry  *engine.Registry
	simulator *engine.Simulator
}

func NewBacktestService(
	log *logger.Logger,
	tradeRepo repository.TradeRepository,
	registry *engine.Registry,
	simulator *engine.Simulator,
) BacktestService {
	return &backtestService{
		log:       log,
		tradeRepo: tradeRepo,
		registry:  registry,
		simulator: simulator,
	}
}

func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error) {
	trades, err := s.tradeRepo.GetAllTrades(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load trades for backtest", logger.ErrorField(err))
		return nil, err
	}
	annotations, err := s.tradeRepo.GetAllAnnotations(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load annotations for backtest", logger.ErrorField(err))
		return nil, err
	}

	rows := engine.MergeRows(trades, annotations)
	if len(rows) == 0 {
		s.log.InfoContext(ctx, "No trade history to backtest")
		return &dto.BacktestResult{Rules: map[string]dto.RuleReport{}, Matrix: []dto.MatrixRow{}}, nil
	}

	rowsByRule := make(map[string][]dto.MergedRow)
	if req.WithSimulation {
		for _, rule := range s.registry.Rules() {
			if rule.Sim == nil {
				continue
			}
			if len(req.Rules) > 0 && !utils.ContainsString(req.Rules, rule.Key) {
				continue
			}
			rowsByRule[rule.Key] = s.simulator.Simulate(ctx, rows, rule)
		}
	}

	reports := engine.Aggregate(rows, rowsByRule, s.registry)
	if len(req.Rules) > 0 {
		for key := range reports {
			if !utils.ContainsString(req.Rules, key) {
				delete(reports, key)
			}
		}
	}

	result := &dto.BacktestResult{
		TotalRows: len(rows),
		Rules:     reports,
		Matrix:    engine.DecisionMatrix(rows, s.registry),
	}

	s.log.InfoContext(ctx, "Backtest completed",
		logger.IntField("total_rows", result.TotalRows),
		logger.IntField("rules", len(result.Rules)),
		logger.Field("with_simulation", req.WithSimulation))

	return result, nil
}
