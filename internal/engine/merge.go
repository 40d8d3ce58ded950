package engine

import (
	"encoding/json"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
)

// MergeRows joins trade records with their annotations by trade identifier
// and derives the directional sign and realized price delta. Trades without an
// annotation still produce a row; orphaned annotations are dropped.
func MergeRows(trades []model.TradeRecord, annotations []model.Annotation) []dto.MergedRow {
	annByTrade := make(map[string]*model.Annotation, len(annotations))
	for i := range annotations {
		annByTrade[annotations[i].TradeID] = &annotations[i]
	}

	rows := make([]dto.MergedRow, 0, len(trades))
	for _, trade := range trades {
		row := dto.MergedRow{
			TradeID:    trade.TradeID,
			Symbol:     trade.Symbol,
			Direction:  trade.Direction,
			Contracts:  trade.Contracts,
			EntryTime:  trade.EntryTime,
			ExitTime:   trade.ExitTime,
			EntryPrice: trade.EntryPrice,
			ExitPrice:  trade.ExitPrice,
			PnL:        trade.PnL,
			Outcome:    trade.Outcome,
			Sign:       dto.DirectionSign(trade.Direction),
		}

		if ann := annByTrade[trade.TradeID]; ann != nil {
			row.POILow = ann.POILow
			row.POIHigh = ann.POIHigh
			row.IFVGLow = ann.IFVGLow
			row.IFVGHigh = ann.IFVGHigh
			row.BOSLevel = ann.BOSLevel
			row.TargetPrice = ann.TargetPrice
			row.SweepTaken = dto.ParseFlexBool(ann.SweepTaken)
			row.MicroShift = dto.ParseFlexBool(ann.MicroShift)
			row.IFVGPresent = dto.ParseFlexBool(ann.IFVGPresent)
			row.Session = ann.Session
			row.EntryMethod = ann.EntryMethod
			row.Exclude = ann.Exclude
			row.Confluences = parseConfluences(ann.Confluences)

			// Some exports omit the explicit flag but annotate the bounds.
			if !row.IFVGPresent.Bool() && row.HasIFVG() {
				row.IFVGPresent = true
			}
		}

		if row.EntryPrice != nil && row.ExitPrice != nil {
			delta := (*row.ExitPrice - *row.EntryPrice) * float64(row.Sign)
			row.PriceDelta = &delta
		}

		rows = append(rows, row)
	}

	return rows
}

func parseConfluences(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
