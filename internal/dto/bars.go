package dto

import "time"

// Bar is a single minute-resolution OHLC candle from the bar-data provider.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// GetBarsParam identifies one bar window request. Start and End are part of
// the identity so a cached window is never silently reused for a different
// window size.
type GetBarsParam struct {
	Symbol string
	Start  time.Time
	End    time.Time
}
