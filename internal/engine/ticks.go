package engine

import (
	"math"
	"strings"
	"trading-journal/internal/dto"
)

// TickSpec holds the tick economics of one futures instrument.
type TickSpec struct {
	Size  float64
	Value float64
}

// tickSpecs maps normalized root symbols to their tick economics.
// Values are per contract, in USD.
var tickSpecs = map[string]TickSpec{
	"NQ":  {Size: 0.25, Value: 5.0},
	"MNQ": {Size: 0.25, Value: 0.5},
	"ES":  {Size: 0.25, Value: 12.5},
	"MES": {Size: 0.25, Value: 1.25},
	"YM":  {Size: 1.0, Value: 5.0},
	"MYM": {Size: 1.0, Value: 0.5},
	"RTY": {Size: 0.1, Value: 5.0},
	"M2K": {Size: 0.1, Value: 0.5},
	"GC":  {Size: 0.1, Value: 10.0},
	"MGC": {Size: 0.1, Value: 1.0},
	"CL":  {Size: 0.01, Value: 10.0},
	"MCL": {Size: 0.01, Value: 1.0},
	"6E":  {Size: 0.00005, Value: 6.25},
}

// NormalizeSymbol strips a trailing two-character contract month/year code
// (NQZ4 -> NQ, MESM5 -> MES). Only the final two characters are stripped, and
// only when the final character is numeric.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if len(s) > 2 {
		last := s[len(s)-1]
		if last >= '0' && last <= '9' {
			s = s[:len(s)-2]
		}
	}
	return s
}

// LookupTickSpec resolves the tick spec for a (possibly contract-suffixed)
// symbol.
func LookupTickSpec(symbol string) (TickSpec, bool) {
	spec, ok := tickSpecs[NormalizeSymbol(symbol)]
	return spec, ok
}

// ComputeRisk computes the monetary risk of an entry/stop pair and, when a
// target is supplied, the reward as a multiple of that risk. When the symbol
// has no registered tick spec or entry/stop is absent, every field of the
// result stays nil: absence of risk data must never read as zero risk.
func ComputeRisk(entry, stop, target *float64, symbol string, contracts int) *dto.RiskProfile {
	out := &dto.RiskProfile{}

	if entry == nil || stop == nil {
		return out
	}
	spec, ok := LookupTickSpec(symbol)
	if !ok {
		return out
	}
	if contracts <= 0 {
		contracts = 1
	}

	move := math.Abs(*entry - *stop)
	ticks := move / spec.Size
	riskUSD := ticks * spec.Value * float64(contracts)

	out.Move = &move
	out.Ticks = &ticks
	out.TickSize = &spec.Size
	out.TickValue = &spec.Value
	out.RiskUSD = &riskUSD

	if target != nil && riskUSD != 0 {
		rewardUSD := math.Abs(*target-*entry) / spec.Size * spec.Value * float64(contracts)
		rMultiple := rewardUSD / riskUSD
		out.RMultiple = &rMultiple
	}

	return out
}
