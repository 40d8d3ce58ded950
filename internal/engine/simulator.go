package engine

import (
	"context"
	"time"
	"trading-journal/internal/dto"
	"trading-journal/pkg/logger"
)

// Simulation defaults.
const (
	DefaultWindowHours = 8
	DefaultLossCapUSD  = 200.0
)

// BarProvider supplies a window of minute bars around a center timestamp.
// Implementations are expected to cache and retry; a failed fetch surfaces as
// an error here and the affected row passes through unsimulated.
type BarProvider interface {
	Fetch(ctx context.Context, symbol string, center time.Time, windowHours int) ([]dto.Bar, error)
}

// Simulator replays historical minute bars forward from a rule-specific
// alternate entry to determine which of stop, target or loss cap would have
// been hit first.
type Simulator struct {
	log         *logger.Logger
	bars        BarProvider
	windowHours int
	lossCapUSD  float64
}

// NewSimulator builds a simulator. Non-positive window/cap fall back to the
// defaults.
func NewSimulator(log *logger.Logger, bars BarProvider, windowHours int, lossCapUSD float64) *Simulator {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	if lossCapUSD <= 0 {
		lossCapUSD = DefaultLossCapUSD
	}
	return &Simulator{
		log:         log,
		bars:        bars,
		windowHours: windowHours,
		lossCapUSD:  lossCapUSD,
	}
}

// Simulate returns a copy of rows where every row qualifying for the rule
// carries a SimulatedOutcome. Rows that cannot be simulated (missing
// timestamp, missing bars, unparseable direction) pass through unmodified;
// the source slice is never mutated.
func (s *Simulator) Simulate(ctx context.Context, rows []dto.MergedRow, rule Rule) []dto.MergedRow {
	out := make([]dto.MergedRow, 0, len(rows))
	for _, row := range rows {
		row.Sim = nil
		if sim := s.simulateRow(ctx, &row, rule); sim != nil {
			row.Sim = sim
		}
		out = append(out, row)
	}
	return out
}

func (s *Simulator) simulateRow(ctx context.Context, row *dto.MergedRow, rule Rule) *dto.SimulatedOutcome {
	if rule.Sim == nil || !rule.Match(row) {
		return nil
	}

	zoneLow, zoneHigh := zoneBounds(row, rule.Sim.Zone)
	if zoneLow == nil || zoneHigh == nil {
		return nil
	}
	if row.Sign == 0 || row.Symbol == "" || row.EntryTime == nil {
		return nil
	}

	entry := (*zoneLow + *zoneHigh) / 2

	var stop float64
	if row.Sign > 0 {
		stop = *zoneLow
	} else {
		stop = *zoneHigh
	}

	target := row.TargetPrice
	if target == nil {
		target = row.BOSLevel
	}
	if target == nil {
		return nil
	}

	center := row.EntryTime.Truncate(time.Minute)
	bars, err := s.bars.Fetch(ctx, row.Symbol, center, s.windowHours)
	if err != nil {
		s.log.WarnContext(ctx, "Bar fetch failed, row passes through unsimulated",
			logger.StringField("trade_id", row.TradeID),
			logger.StringField("symbol", row.Symbol),
			logger.ErrorField(err))
		return nil
	}

	entryUTC := row.EntryTime.UTC()
	window := make([]dto.Bar, 0, len(bars))
	for _, bar := range bars {
		if !bar.Time.Before(entryUTC) {
			window = append(window, bar)
		}
	}
	if len(window) == 0 {
		return nil
	}

	// Dollar value of one price unit, taken from the original trade so the
	// counterfactual PnL stays comparable to the realized PnL even when the
	// tick spec is imprecise or missing.
	var perUnit float64
	if row.PnL != nil && row.PriceDelta != nil && *row.PriceDelta != 0 {
		perUnit = *row.PnL / *row.PriceDelta
	}

	sign := float64(row.Sign)

	var capPrice *float64
	if perUnit > 0 {
		p := entry - sign*(s.lossCapUSD/perUnit)
		capPrice = &p
	}

	outcome := dto.OutcomeOpen
	exit := window[len(window)-1].Close

scan:
	for _, bar := range window {
		var capHit, stopHit, targetHit bool
		if row.Sign > 0 {
			capHit = capPrice != nil && bar.Low <= *capPrice
			stopHit = bar.Low <= stop
			targetHit = bar.High >= *target
		} else {
			capHit = capPrice != nil && bar.High >= *capPrice
			stopHit = bar.High >= stop
			targetHit = bar.Low <= *target
		}

		// Tie-break within a single bar: loss cap first, then stop, then
		// target.
		switch {
		case capHit:
			outcome, exit = dto.OutcomeLossCap, *capPrice
			break scan
		case stopHit:
			outcome, exit = dto.OutcomeStopLoss, stop
			break scan
		case targetHit:
			outcome, exit = dto.OutcomeTarget, *target
			break scan
		}
	}

	return &dto.SimulatedOutcome{
		Entry:   entry,
		Exit:    exit,
		Outcome: outcome,
		PnL:     perUnit * (exit - entry) * sign,
	}
}

func zoneBounds(row *dto.MergedRow, zone ZoneKind) (*float64, *float64) {
	switch zone {
	case ZoneIFVG:
		return row.IFVGLow, row.IFVGHigh
	default:
		return row.POILow, row.POIHigh
	}
}
