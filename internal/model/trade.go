package model

import "time"

// TradeRecord is a closed historical trade imported by the upstream journal
// collaborator. Immutable once recorded.
type TradeRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TradeID    string     `gorm:"not null;uniqueIndex" json:"trade_id"`
	Symbol     string     `gorm:"not null" json:"symbol"`
	Direction  string     `gorm:"not null" json:"direction"`
	Contracts  int        `gorm:"not null;default:1" json:"contracts"`
	EntryTime  *time.Time `json:"entry_time"`
	ExitTime   *time.Time `json:"exit_time"`
	EntryPrice *float64   `json:"entry_price"`
	ExitPrice  *float64   `json:"exit_price"`
	PnL        *float64   `gorm:"column:pnl" json:"pnl"`
	Outcome    string     `json:"outcome"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TradeRecord) TableName() string {
	return "trade_records"
}
