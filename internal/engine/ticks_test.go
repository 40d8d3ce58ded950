package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
	}{
		{name: "contract month and year stripped", symbol: "NQZ4", want: "NQ"},
		{name: "micro contract stripped", symbol: "MESM5", want: "MES"},
		{name: "bare root untouched", symbol: "NQ", want: "NQ"},
		{name: "non-numeric tail untouched", symbol: "MNQ", want: "MNQ"},
		{name: "lowercase normalized", symbol: "nqz4", want: "NQ"},
		{name: "whitespace trimmed", symbol: " ES ", want: "ES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSymbol(tt.symbol))
		})
	}
}

func TestComputeRisk(t *testing.T) {
	t.Run("unknown symbol returns all nil, never zero", func(t *testing.T) {
		risk := ComputeRisk(fp(100), fp(99), fp(102), "UNKNOWN", 1)
		assert.Nil(t, risk.RiskUSD)
		assert.Nil(t, risk.TickSize)
		assert.Nil(t, risk.TickValue)
		assert.Nil(t, risk.Ticks)
		assert.Nil(t, risk.Move)
		assert.Nil(t, risk.RMultiple)
		assert.False(t, risk.Available())
	})

	t.Run("missing entry returns all nil", func(t *testing.T) {
		risk := ComputeRisk(nil, fp(99), nil, "NQ", 1)
		assert.Nil(t, risk.RiskUSD)
	})

	t.Run("missing stop returns all nil", func(t *testing.T) {
		risk := ComputeRisk(fp(100), nil, nil, "NQ", 1)
		assert.Nil(t, risk.RiskUSD)
	})

	t.Run("known symbol computes tick economics", func(t *testing.T) {
		// NQ: tick size 0.25, tick value $5. 10 point stop = 40 ticks = $200.
		risk := ComputeRisk(fp(18010), fp(18000), fp(18030), "NQZ4", 1)
		require.True(t, risk.Available())
		assert.InDelta(t, 10.0, *risk.Move, 1e-9)
		assert.InDelta(t, 40.0, *risk.Ticks, 1e-9)
		assert.InDelta(t, 200.0, *risk.RiskUSD, 1e-9)
		require.NotNil(t, risk.RMultiple)
		assert.InDelta(t, 2.0, *risk.RMultiple, 1e-9)
	})

	t.Run("contract count scales risk", func(t *testing.T) {
		risk := ComputeRisk(fp(18010), fp(18000), nil, "NQ", 3)
		require.True(t, risk.Available())
		assert.InDelta(t, 600.0, *risk.RiskUSD, 1e-9)
		assert.Nil(t, risk.RMultiple)
	})

	t.Run("zero risk yields no r multiple", func(t *testing.T) {
		risk := ComputeRisk(fp(18000), fp(18000), fp(18030), "NQ", 1)
		require.True(t, risk.Available())
		assert.InDelta(t, 0.0, *risk.RiskUSD, 1e-9)
		assert.Nil(t, risk.RMultiple)
	})
}
