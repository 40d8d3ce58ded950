package engine

import (
	"strings"
	"trading-journal/internal/dto"
)

// Grade thresholds are fixed constants, not configurable per call.
const (
	gradeAPlusMin = 7
	gradeAMin     = 5
	gradeBMin     = 3
)

// ScoreTrade grades a setup from its structural annotation. The score is
// additive: +2 for a complete point-of-interest zone, +1 for a projected
// target, +3 for a confirmed micro structure shift, +1 for a present
// imbalance zone, +1 for a London/Asia session.
func ScoreTrade(row *dto.MergedRow) dto.SetupScore {
	score := 0

	if row.HasPOI() {
		score += 2
	}
	if row.TargetPrice != nil {
		score++
	}
	if row.MicroShift.Bool() {
		score += 3
	}
	if row.IFVGPresent.Bool() {
		score++
	}
	switch strings.ToLower(strings.TrimSpace(row.Session)) {
	case "london", "asia":
		score++
	}

	return dto.SetupScore{Score: score, Grade: gradeFor(score)}
}

func gradeFor(score int) dto.Grade {
	switch {
	case score >= gradeAPlusMin:
		return dto.GradeAPlus
	case score >= gradeAMin:
		return dto.GradeA
	case score >= gradeBMin:
		return dto.GradeB
	default:
		return dto.GradeC
	}
}
