package model

import (
	"time"

	"gorm.io/datatypes"
)

// Annotation carries the structural price levels attached to one trade.
// Flag columns keep the raw upstream value (bool exports arrive as "true" /
// "false" strings from some sources); normalization happens once at merge.
type Annotation struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	TradeID     string   `gorm:"not null;uniqueIndex" json:"trade_id"`
	POILow      *float64 `json:"poi_low"`
	POIHigh     *float64 `json:"poi_high"`
	IFVGLow     *float64 `json:"ifvg_low"`
	IFVGHigh    *float64 `json:"ifvg_high"`
	BOSLevel    *float64 `json:"bos_level"`
	TargetPrice *float64 `json:"target_price"`

	SweepTaken  string `json:"sweep_taken"`
	MicroShift  string `json:"micro_shift"`
	IFVGPresent string `json:"ifvg_present"`

	Confluences datatypes.JSON `gorm:"type:jsonb" json:"confluences"`
	Session     string         `json:"session"`
	EntryMethod string         `json:"entry_method"`
	Exclude     bool           `gorm:"not null;default:false" json:"exclude"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Annotation) TableName() string {
	return "annotations"
}
