package engine

import (
	"time"
	"trading-journal/internal/dto"
)

func fp(v float64) *float64 {
	return &v
}

func tp(v time.Time) *time.Time {
	return &v
}

// longRow is a fully annotated long NQ row used across tests.
func longRow() dto.MergedRow {
	entryTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	return dto.MergedRow{
		TradeID:     "T-1",
		Symbol:      "NQZ4",
		Direction:   dto.DirectionLong,
		Contracts:   1,
		EntryTime:   tp(entryTime),
		EntryPrice:  fp(18000.0),
		ExitPrice:   fp(18050.0),
		PnL:         fp(1000.0),
		POILow:      fp(17990.0),
		POIHigh:     fp(18010.0),
		TargetPrice: fp(18100.0),
		Session:     "London",
		Sign:        1,
		PriceDelta:  fp(50.0),
	}
}
