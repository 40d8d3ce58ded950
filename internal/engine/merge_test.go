package engine

import (
	"encoding/json"
	"testing"
	"time"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRows(t *testing.T) {
	entryTime := time.Date(2025, 2, 3, 8, 15, 0, 0, time.UTC)

	trades := []model.TradeRecord{
		{
			TradeID:    "T-1",
			Symbol:     "NQZ4",
			Direction:  "long",
			Contracts:  2,
			EntryTime:  tp(entryTime),
			EntryPrice: fp(18000.0),
			ExitPrice:  fp(18050.0),
			PnL:        fp(500.0),
		},
		{
			TradeID:    "T-2",
			Symbol:     "ES",
			Direction:  "short",
			EntryPrice: fp(5000.0),
			ExitPrice:  fp(5010.0),
			PnL:        fp(-125.0),
		},
		{
			TradeID:   "T-3",
			Symbol:    "GC",
			Direction: "sideways",
		},
	}
	annotations := []model.Annotation{
		{
			TradeID:     "T-1",
			POILow:      fp(17990.0),
			POIHigh:     fp(18010.0),
			MicroShift:  "TRUE",
			Session:     "London",
			EntryMethod: "ifvg",
			Confluences: []byte(`["sweep","session"]`),
			Exclude:     true,
		},
		{
			TradeID:  "T-ORPHAN",
			BOSLevel: fp(1.0),
		},
	}

	rows := MergeRows(trades, annotations)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "T-1", first.TradeID)
	assert.Equal(t, 1, first.Sign)
	require.NotNil(t, first.PriceDelta)
	assert.InDelta(t, 50.0, *first.PriceDelta, 1e-9)
	assert.True(t, first.MicroShift.Bool())
	assert.True(t, first.Exclude)
	assert.Equal(t, []string{"sweep", "session"}, first.Confluences)
	assert.Equal(t, "ifvg", first.EntryMethod)

	second := rows[1]
	assert.Equal(t, -1, second.Sign)
	require.NotNil(t, second.PriceDelta)
	// (5010 - 5000) * -1: a short that moved up is a negative delta.
	assert.InDelta(t, -10.0, *second.PriceDelta, 1e-9)
	assert.False(t, second.MicroShift.Bool())

	third := rows[2]
	assert.Equal(t, 0, third.Sign)
	assert.Nil(t, third.PriceDelta)
}

func TestMergeRowsDerivesIFVGPresentFromBounds(t *testing.T) {
	trades := []model.TradeRecord{{TradeID: "T-1", Symbol: "NQ", Direction: "long"}}
	annotations := []model.Annotation{{
		TradeID:  "T-1",
		IFVGLow:  fp(100.0),
		IFVGHigh: fp(101.0),
	}}

	rows := MergeRows(trades, annotations)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IFVGPresent.Bool())
}

func TestFlexBoolJSONForms(t *testing.T) {
	var row dto.MergedRow
	payload := []byte(`{"trade_id":"T-1","micro_shift":"True","sweep_taken":false,"ifvg_present":true}`)
	require.NoError(t, json.Unmarshal(payload, &row))

	assert.True(t, row.MicroShift.Bool())
	assert.False(t, row.SweepTaken.Bool())
	assert.True(t, row.IFVGPresent.Bool())
}
