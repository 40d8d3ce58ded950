package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// FlexBool is a boolean that unmarshals from either a JSON bool or the
// strings "true"/"false" (case-insensitive). Upstream annotation exports are
// inconsistent about which form they emit, so the conversion happens once at
// ingestion and the engine only ever sees a canonical bool.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = FlexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

func (b FlexBool) Bool() bool {
	return bool(b)
}

// ParseFlexBool normalizes a raw stored flag ("true", "TRUE", "false", "")
// into a FlexBool.
func ParseFlexBool(raw string) FlexBool {
	return FlexBool(strings.EqualFold(strings.TrimSpace(raw), "true"))
}

// DirectionSign maps a trade direction label to +1 (long), -1 (short) or 0
// when the label cannot be parsed.
func DirectionSign(direction string) int {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case DirectionLong, "buy":
		return 1
	case DirectionShort, "sell":
		return -1
	default:
		return 0
	}
}

// MergedRow is the join of a closed trade with its structural annotation,
// plus derived fields. It is computed fresh per batch run and never persisted.
type MergedRow struct {
	TradeID   string     `json:"trade_id"`
	Symbol    string     `json:"symbol"`
	Direction string     `json:"direction"`
	Contracts int        `json:"contracts"`

	EntryTime  *time.Time `json:"entry_time,omitempty"`
	ExitTime   *time.Time `json:"exit_time,omitempty"`
	EntryPrice *float64   `json:"entry_price,omitempty"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	PnL        *float64   `json:"pnl,omitempty"`
	Outcome    string     `json:"outcome,omitempty"`

	POILow      *float64 `json:"poi_low,omitempty"`
	POIHigh     *float64 `json:"poi_high,omitempty"`
	IFVGLow     *float64 `json:"ifvg_low,omitempty"`
	IFVGHigh    *float64 `json:"ifvg_high,omitempty"`
	BOSLevel    *float64 `json:"bos_level,omitempty"`
	TargetPrice *float64 `json:"target_price,omitempty"`

	SweepTaken  FlexBool `json:"sweep_taken"`
	MicroShift  FlexBool `json:"micro_shift"`
	IFVGPresent FlexBool `json:"ifvg_present"`

	Confluences []string `json:"confluences,omitempty"`
	Session     string   `json:"session,omitempty"`
	EntryMethod string   `json:"entry_method,omitempty"`
	Exclude     bool     `json:"exclude"`

	// Derived at merge time.
	Sign       int      `json:"sign"`
	PriceDelta *float64 `json:"price_delta,omitempty"`

	// Sim is set on copies produced by the forward-bar simulator; the source
	// row is never mutated.
	Sim *SimulatedOutcome `json:"sim,omitempty"`
}

// HasPOI reports whether both point-of-interest bounds are annotated.
func (r *MergedRow) HasPOI() bool {
	return r.POILow != nil && r.POIHigh != nil
}

// HasIFVG reports whether both imbalance-zone bounds are annotated.
func (r *MergedRow) HasIFVG() bool {
	return r.IFVGLow != nil && r.IFVGHigh != nil
}

// EffectivePnL returns the simulated PnL when a simulated outcome is
// attached, otherwise the realized PnL of the original trade.
func (r *MergedRow) EffectivePnL() *float64 {
	if r.Sim != nil {
		pnl := r.Sim.PnL
		return &pnl
	}
	return r.PnL
}

// EffectivePriceDelta returns the simulated signed price delta when a
// simulated outcome is attached, otherwise the realized one.
func (r *MergedRow) EffectivePriceDelta() *float64 {
	if r.Sim != nil {
		delta := (r.Sim.Exit - r.Sim.Entry) * float64(r.Sign)
		return &delta
	}
	return r.PriceDelta
}
