package engine

import (
	"trading-journal/internal/dto"
)

// MetricsFor computes the aggregate metrics of one row subset. Win, loss and
// breakeven are classified strictly by the sign of the effective PnL; any
// outcome label stored on the row is ignored so the aggregation stays
// self-consistent even when upstream labels are stale.
func MetricsFor(rows []dto.MergedRow) dto.RuleMetrics {
	m := dto.RuleMetrics{}

	var deltaSum float64
	var deltaCount int

	for i := range rows {
		row := &rows[i]
		m.Total++

		var pnl float64
		if p := row.EffectivePnL(); p != nil {
			pnl = *p
		}
		switch {
		case pnl > 0:
			m.Wins++
		case pnl < 0:
			m.Losses++
		default:
			m.Breakeven++
		}
		m.TotalPnL += pnl

		if delta := row.EffectivePriceDelta(); delta != nil {
			deltaSum += *delta
			deltaCount++
		}
	}

	if m.Total > 0 {
		m.WinRate = float64(m.Wins) / float64(m.Total) * 100
		m.AvgPnL = m.TotalPnL / float64(m.Total)
	}
	if deltaCount > 0 {
		m.AvgPriceDelta = deltaSum / float64(deltaCount)
	}

	return m
}

// Aggregate computes the per-rule all/clean reports over the full row set.
// rowsByRule optionally substitutes a rule-specific row set (e.g. with
// simulated outcomes attached); rules absent from the map aggregate over
// baseRows.
func Aggregate(baseRows []dto.MergedRow, rowsByRule map[string][]dto.MergedRow, registry *Registry) map[string]dto.RuleReport {
	out := make(map[string]dto.RuleReport, len(registry.Rules()))

	for _, rule := range registry.Rules() {
		rows := baseRows
		if substituted, ok := rowsByRule[rule.Key]; ok {
			rows = substituted
		}

		var members, clean []dto.MergedRow
		for i := range rows {
			if !rule.Match(&rows[i]) {
				continue
			}
			members = append(members, rows[i])
			if !rows[i].Exclude {
				clean = append(clean, rows[i])
			}
		}

		out[rule.Key] = dto.RuleReport{
			Label: rule.Label,
			All:   MetricsFor(members),
			Clean: MetricsFor(clean),
		}
	}

	return out
}

// DecisionMatrix emits, for every trade, a boolean per rule indicating
// membership, for downstream inspection of rule overlap.
func DecisionMatrix(rows []dto.MergedRow, registry *Registry) []dto.MatrixRow {
	matrix := make([]dto.MatrixRow, 0, len(rows))
	for i := range rows {
		entry := dto.MatrixRow{
			TradeID: rows[i].TradeID,
			Members: make(map[string]bool, len(registry.Rules())),
		}
		for _, rule := range registry.Rules() {
			entry.Members[rule.Key] = rule.Match(&rows[i])
		}
		matrix = append(matrix, entry)
	}
	return matrix
}
