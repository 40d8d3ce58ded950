package dto

// RiskProfile is the output of the tick/risk calculator. Every field is a
// pointer: a missing tick spec or a missing entry/stop leaves the fields nil,
// which is distinct from a computed zero.
type RiskProfile struct {
	RiskUSD   *float64 `json:"risk_usd"`
	TickValue *float64 `json:"tick_value"`
	TickSize  *float64 `json:"tick_size"`
	Ticks     *float64 `json:"ticks"`
	RMultiple *float64 `json:"r_multiple"`
	Move      *float64 `json:"move"`
}

// Available reports whether the risk computation produced a usable result.
func (r *RiskProfile) Available() bool {
	return r != nil && r.RiskUSD != nil
}
