package dto

// Simulated outcome tags.
const (
	OutcomeStopLoss = "sl"
	OutcomeTarget   = "tp"
	OutcomeLossCap  = "sl_cap"
	OutcomeOpen     = "open"
)

// SimulatedOutcome is the result of replaying bars forward from an alternate
// hypothetical entry. Recomputed per run, never persisted.
type SimulatedOutcome struct {
	Entry   float64 `json:"entry"`
	Exit    float64 `json:"exit"`
	Outcome string  `json:"outcome"`
	PnL     float64 `json:"pnl"`
}

// BacktestRequest defines the parameters for a batch backtest run.
type BacktestRequest struct {
	// WithSimulation substitutes the rule-specific simulated alternate
	// entry/exit for rules that define one.
	WithSimulation bool `json:"with_simulation"`
	// Rules restricts the run to the given rule keys; empty means every
	// registered rule.
	Rules []string `json:"rules,omitempty"`
}

// RuleMetrics are the aggregate metrics over one subset of qualifying rows.
type RuleMetrics struct {
	Total         int     `json:"total"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Breakeven     int     `json:"breakeven"`
	WinRate       float64 `json:"win_rate"`
	AvgPnL        float64 `json:"avg_pnl"`
	TotalPnL      float64 `json:"total_pnl"`
	AvgPriceDelta float64 `json:"avg_price_delta"`
}

// RuleReport holds the metrics for one rule, computed once over all
// qualifying rows and once over the subset excluding non-representative rows.
type RuleReport struct {
	Label string      `json:"label"`
	All   RuleMetrics `json:"all"`
	Clean RuleMetrics `json:"clean"`
}

// MatrixRow records, for one trade, which rules it qualifies for.
type MatrixRow struct {
	TradeID string          `json:"trade_id"`
	Members map[string]bool `json:"members"`
}

// BacktestResult is the batch report: the per-rule statistics map and the
// per-trade decision matrix.
type BacktestResult struct {
	TotalRows int                   `json:"total_rows"`
	Rules     map[string]RuleReport `json:"rules"`
	Matrix    []MatrixRow           `json:"matrix"`
}
