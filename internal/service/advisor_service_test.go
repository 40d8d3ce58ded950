package service

import (
	"context"
	"testing"
	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/engine"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisorService(repo *fakeTradeRepo, stats *recordingRuleStatsRepo) AdvisorService {
	cfg := &config.Config{
		Advisor: config.Advisor{
			RemainingDrawdown: 500,
			RiskCapPct:        0.10,
			RequireGrade:      "A+",
		},
	}
	return NewAdvisorService(cfg, logger.NewNop(), engine.DefaultRegistry(), repo, stats)
}

func TestEvaluateTradeUsesStoredAnnotation(t *testing.T) {
	svc := newTestAdvisorService(fixtureRepo(), &recordingRuleStatsRepo{})

	eval, err := svc.EvaluateTrade(context.Background(), "T-1")
	require.NoError(t, err)
	require.NotNil(t, eval)

	assert.Equal(t, engine.RulePOIMidpoint, eval.Rule)
	// POI +2, target +1, london session +1: grade B, below the required A+.
	assert.Equal(t, dto.GradeB, eval.Grade)
	assert.Equal(t, dto.DecisionSkip, eval.Decision)
}

func TestEvaluateTradeNotFound(t *testing.T) {
	svc := newTestAdvisorService(&fakeTradeRepo{}, &recordingRuleStatsRepo{})

	eval, err := svc.EvaluateTrade(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, eval)
}

func TestEvaluateSetupOverridesDefaults(t *testing.T) {
	svc := newTestAdvisorService(fixtureRepo(), &recordingRuleStatsRepo{})

	grade := "B"
	req := dto.EvaluateRequest{
		Row: dto.MergedRow{
			TradeID:     "live",
			Symbol:      "MNQZ4",
			Direction:   "long",
			Contracts:   1,
			Sign:        1,
			POILow:      fp(17990),
			POIHigh:     fp(18010),
			TargetPrice: fp(18100),
			Session:     "london",
		},
		RequireGrade: &grade,
	}

	eval, err := svc.EvaluateSetup(context.Background(), req)
	require.NoError(t, err)

	// Micro size keeps the derived risk well under the cap and the grade
	// requirement is relaxed to B, so the gate opens.
	assert.Equal(t, dto.DecisionEnter, eval.Decision)
}

func TestRuleStatsAdapterDegradesOnError(t *testing.T) {
	adapter := &ruleStatsAdapter{
		log:  logger.NewNop(),
		repo: &recordingRuleStatsRepo{getErr: assert.AnError},
	}

	report, ok := adapter.StatsFor(context.Background(), engine.RulePOIMidpoint)
	assert.False(t, ok)
	assert.Nil(t, report)
}
