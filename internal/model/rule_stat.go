package model

import (
	"time"

	"gorm.io/datatypes"
)

// RuleStat is one persisted per-rule aggregate report, refreshed by the
// scheduled batch run and read back by the decision gate.
type RuleStat struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	RuleKey   string         `gorm:"not null;uniqueIndex" json:"rule_key"`
	Report    datatypes.JSON `gorm:"type:jsonb;not null" json:"report"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RuleStat) TableName() string {
	return "rule_stats"
}
