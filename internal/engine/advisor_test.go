package engine

import (
	"context"
	"testing"
	"trading-journal/internal/dto"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureStats map[string]dto.RuleReport

func (f fixtureStats) StatsFor(_ context.Context, ruleKey string) (*dto.RuleReport, bool) {
	report, ok := f[ruleKey]
	if !ok {
		return nil, false
	}
	return &report, true
}

func defaultParams() AdvisorParams {
	return AdvisorParams{
		RemainingDrawdown: 500.0,
		RiskCapPct:        0.10,
		RequireGrade:      dto.GradeC,
	}
}

func newTestAdvisor(stats RuleStatsProvider) *Advisor {
	return NewAdvisor(logger.NewNop(), DefaultRegistry(), stats)
}

// A long trade with POI zone [1.1000, 1.1010] and no explicit entry must
// derive entry = 1.1005 and stop = 1.1000 and compute risk from that pair.
// 6E: tick 0.00005, $6.25/tick -> 10 ticks = $62.50 risk, over an effective
// cap of $50 -> skip with a reason naming both amounts.
func TestEvaluateSetupRiskGate(t *testing.T) {
	advisor := newTestAdvisor(nil)

	row := dto.MergedRow{
		TradeID:     "T-RISK",
		Symbol:      "6EZ4",
		Direction:   dto.DirectionLong,
		Contracts:   1,
		POILow:      fp(1.1000),
		POIHigh:     fp(1.1010),
		TargetPrice: fp(1.1050),
		Sign:        1,
	}

	eval := advisor.EvaluateSetup(context.Background(), &row, defaultParams())

	require.True(t, eval.Risk.Available())
	// Derived entry 1.1005; stop 1.1000; move 0.0005 = 10 ticks = $62.50.
	assert.InDelta(t, 0.0005, *eval.Risk.Move, 1e-9)
	assert.InDelta(t, 62.5, *eval.Risk.RiskUSD, 1e-6)

	assert.Equal(t, dto.DecisionSkip, eval.Decision)
	require.Len(t, eval.Reasons, 1)
	assert.Contains(t, eval.Reasons[0], "$62.50")
	assert.Contains(t, eval.Reasons[0], "$50.00")
}

func TestEvaluateSetupGradeGate(t *testing.T) {
	advisor := newTestAdvisor(nil)

	// Score 5 (POI + micro shift) grades A, below the required A+. Risk is
	// unavailable for the unknown symbol, so the grade gate is the only one
	// that can fire.
	row := dto.MergedRow{
		TradeID:    "T-GRADE",
		Symbol:     "UNLISTED",
		Direction:  dto.DirectionLong,
		POILow:     fp(100.0),
		POIHigh:    fp(101.0),
		MicroShift: true,
		Sign:       1,
	}

	params := defaultParams()
	params.RequireGrade = dto.GradeAPlus

	eval := advisor.EvaluateSetup(context.Background(), &row, params)

	assert.Equal(t, dto.GradeA, eval.Grade)
	assert.Equal(t, 5, eval.Score)
	assert.Equal(t, dto.DecisionSkip, eval.Decision)
	require.Len(t, eval.Reasons, 1)
	assert.Contains(t, eval.Reasons[0], "grade A below required A+")
}

func TestEvaluateSetupMicroGate(t *testing.T) {
	advisor := newTestAdvisor(nil)

	row := dto.MergedRow{
		TradeID: "T-MICRO",
		Symbol:  "UNLISTED",
		POILow:  fp(100.0),
		POIHigh: fp(101.0),
	}

	params := defaultParams()
	params.RequireMicro = true

	eval := advisor.EvaluateSetup(context.Background(), &row, params)

	assert.Equal(t, dto.DecisionSkip, eval.Decision)
	assert.Contains(t, eval.Reasons, "micro structure shift not confirmed")
}

func TestEvaluateSetupEnter(t *testing.T) {
	advisor := newTestAdvisor(fixtureStats{
		RulePOIMidpoint: {Label: "POI midpoint entry", All: dto.RuleMetrics{Total: 12, Wins: 8}},
	})

	// MNQ: $0.50/tick. Stop 10 points below midpoint entry = 40 ticks = $20,
	// inside the $50 cap.
	row := dto.MergedRow{
		TradeID:     "T-ENTER",
		Symbol:      "MNQZ4",
		Direction:   dto.DirectionLong,
		Contracts:   1,
		POILow:      fp(17990.0),
		POIHigh:     fp(18010.0),
		TargetPrice: fp(18100.0),
		Sign:        1,
	}

	eval := advisor.EvaluateSetup(context.Background(), &row, defaultParams())

	assert.Equal(t, dto.DecisionEnter, eval.Decision)
	assert.Empty(t, eval.Reasons)
	assert.Equal(t, RulePOIMidpoint, eval.Rule)
	require.NotNil(t, eval.Stats)
	assert.Equal(t, 12, eval.Stats.All.Total)
	require.True(t, eval.Risk.Available())
	assert.InDelta(t, 20.0, *eval.Risk.RiskUSD, 1e-9)
}

// Multiple gates can trigger at once; every triggered gate appends a reason.
func TestEvaluateSetupAccumulatesReasons(t *testing.T) {
	advisor := newTestAdvisor(nil)

	row := dto.MergedRow{
		TradeID:   "T-MULTI",
		Symbol:    "NQZ4",
		Direction: dto.DirectionLong,
		Contracts: 1,
		POILow:    fp(17900.0),
		POIHigh:   fp(18100.0),
		Sign:      1,
	}

	params := defaultParams()
	params.RequireGrade = dto.GradeAPlus
	params.RequireMicro = true

	eval := advisor.EvaluateSetup(context.Background(), &row, params)

	assert.Equal(t, dto.DecisionSkip, eval.Decision)
	assert.Len(t, eval.Reasons, 3)
}

// An unknown require_grade value tightens the gate to A+ instead of
// loosening it.
func TestEvaluateSetupUnknownRequireGrade(t *testing.T) {
	advisor := newTestAdvisor(nil)

	row := dto.MergedRow{
		TradeID: "T-UNKNOWN-GRADE",
		Symbol:  "UNLISTED",
		POILow:  fp(100.0),
		POIHigh: fp(101.0),
	}

	params := defaultParams()
	params.RequireGrade = dto.Grade("S-tier")

	eval := advisor.EvaluateSetup(context.Background(), &row, params)
	assert.Equal(t, dto.DecisionSkip, eval.Decision)
}
