package engine

import (
	"context"
	"fmt"
	"trading-journal/internal/dto"
	"trading-journal/pkg/logger"
)

// AdvisorParams is the explicit configuration surface of one gate evaluation.
type AdvisorParams struct {
	RemainingDrawdown float64
	RiskCapPct        float64
	RequireGrade      dto.Grade
	RequireMicro      bool
}

// RuleStatsProvider supplies precomputed per-rule aggregate reports. It is an
// injected dependency so tests can substitute fixture statistics without any
// storage coupling.
type RuleStatsProvider interface {
	StatsFor(ctx context.Context, ruleKey string) (*dto.RuleReport, bool)
}

// Advisor is the setup decision gate.
type Advisor struct {
	log      *logger.Logger
	registry *Registry
	stats    RuleStatsProvider
}

// NewAdvisor builds a decision gate over the given rule registry. stats may
// be nil when no precomputed rule statistics are available.
func NewAdvisor(log *logger.Logger, registry *Registry, stats RuleStatsProvider) *Advisor {
	return &Advisor{
		log:      log,
		registry: registry,
		stats:    stats,
	}
}

// EvaluateSetup grades the setup, computes its monetary risk, resolves the
// applicable rule and gates an enter/skip verdict against the risk budget.
// The decision starts as "wait" and the gate itself only ever returns
// "enter" or "skip"; each triggered gate appends a reason.
func (a *Advisor) EvaluateSetup(ctx context.Context, row *dto.MergedRow, params AdvisorParams) *dto.SetupEvaluation {
	eval := &dto.SetupEvaluation{
		Decision: dto.DecisionWait,
		Reasons:  []string{},
	}

	setupScore := ScoreTrade(row)
	eval.Score = setupScore.Score
	eval.Grade = setupScore.Grade

	// Derive the price triad from the annotation when the trade itself does
	// not carry one: entry at the POI midpoint, stop at the POI low, target
	// at the projected target.
	entry := row.EntryPrice
	if entry == nil && row.HasPOI() {
		midpoint := (*row.POILow + *row.POIHigh) / 2
		entry = &midpoint
	}
	stop := row.POILow
	target := row.TargetPrice

	risk := ComputeRisk(entry, stop, target, row.Symbol, row.Contracts)
	eval.Risk = risk

	ruleKey := a.registry.SelectRule(row)
	eval.Rule = ruleKey
	if a.stats != nil && ruleKey != "" {
		if report, ok := a.stats.StatsFor(ctx, ruleKey); ok {
			eval.Stats = report
		}
	}

	riskCap := params.RemainingDrawdown * params.RiskCapPct
	if risk.Available() && *risk.RiskUSD > riskCap {
		eval.Reasons = append(eval.Reasons, fmt.Sprintf(
			"risk $%.2f exceeds cap $%.2f (%.0f%% of remaining drawdown $%.2f)",
			*risk.RiskUSD, riskCap, params.RiskCapPct*100, params.RemainingDrawdown))
	}
	if setupScore.Grade.Rank() < params.RequireGrade.Rank() {
		eval.Reasons = append(eval.Reasons, fmt.Sprintf(
			"grade %s below required %s", setupScore.Grade, params.RequireGrade))
	}
	if params.RequireMicro && !row.MicroShift.Bool() {
		eval.Reasons = append(eval.Reasons, "micro structure shift not confirmed")
	}

	if len(eval.Reasons) > 0 {
		eval.Decision = dto.DecisionSkip
	} else {
		eval.Decision = dto.DecisionEnter
	}

	a.log.DebugContext(ctx, "Setup evaluated",
		logger.StringField("trade_id", row.TradeID),
		logger.StringField("decision", string(eval.Decision)),
		logger.StringField("grade", string(eval.Grade)),
		logger.StringField("rule", ruleKey))

	return eval
}
