package engine

import (
	"testing"
	"trading-journal/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestScoreTrade(t *testing.T) {
	tests := []struct {
		name      string
		row       dto.MergedRow
		wantScore int
		wantGrade dto.Grade
	}{
		{
			name:      "empty row grades C",
			row:       dto.MergedRow{},
			wantScore: 0,
			wantGrade: dto.GradeC,
		},
		{
			name:      "poi bounds only",
			row:       dto.MergedRow{POILow: fp(1), POIHigh: fp(2)},
			wantScore: 2,
			wantGrade: dto.GradeC,
		},
		{
			name:      "single poi bound does not count",
			row:       dto.MergedRow{POILow: fp(1)},
			wantScore: 0,
			wantGrade: dto.GradeC,
		},
		{
			name:      "poi plus target grades B",
			row:       dto.MergedRow{POILow: fp(1), POIHigh: fp(2), TargetPrice: fp(3)},
			wantScore: 3,
			wantGrade: dto.GradeB,
		},
		{
			name: "micro shift weighs three",
			row: dto.MergedRow{
				POILow: fp(1), POIHigh: fp(2),
				MicroShift: true,
			},
			wantScore: 5,
			wantGrade: dto.GradeA,
		},
		{
			name: "full confluence grades A+",
			row: dto.MergedRow{
				POILow: fp(1), POIHigh: fp(2),
				TargetPrice: fp(3),
				MicroShift:  true,
				IFVGPresent: true,
				Session:     "London",
			},
			wantScore: 8,
			wantGrade: dto.GradeAPlus,
		},
		{
			name: "session match is case-insensitive",
			row: dto.MergedRow{
				POILow: fp(1), POIHigh: fp(2),
				TargetPrice: fp(3),
				MicroShift:  true,
				Session:     "asia",
			},
			wantScore: 7,
			wantGrade: dto.GradeAPlus,
		},
		{
			name: "new york session does not score",
			row: dto.MergedRow{
				POILow: fp(1), POIHigh: fp(2),
				Session: "New York",
			},
			wantScore: 2,
			wantGrade: dto.GradeC,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreTrade(&tt.row)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantGrade, got.Grade)
		})
	}
}

// Adding any single qualifying criterion never decreases the score.
func TestScoreTradeMonotonic(t *testing.T) {
	base := dto.MergedRow{}
	baseScore := ScoreTrade(&base).Score

	additions := []func(r *dto.MergedRow){
		func(r *dto.MergedRow) { r.POILow, r.POIHigh = fp(1), fp(2) },
		func(r *dto.MergedRow) { r.TargetPrice = fp(3) },
		func(r *dto.MergedRow) { r.MicroShift = true },
		func(r *dto.MergedRow) { r.IFVGPresent = true },
		func(r *dto.MergedRow) { r.Session = "London" },
	}
	for _, add := range additions {
		row := dto.MergedRow{}
		add(&row)
		assert.GreaterOrEqual(t, ScoreTrade(&row).Score, baseScore)
	}

	// And stacking them is monotonic too.
	row := dto.MergedRow{}
	prev := baseScore
	for _, add := range additions {
		add(&row)
		score := ScoreTrade(&row).Score
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestFlexBoolStringForms(t *testing.T) {
	assert.True(t, dto.ParseFlexBool("true").Bool())
	assert.True(t, dto.ParseFlexBool("TRUE").Bool())
	assert.True(t, dto.ParseFlexBool(" True ").Bool())
	assert.False(t, dto.ParseFlexBool("false").Bool())
	assert.False(t, dto.ParseFlexBool("").Bool())
	assert.False(t, dto.ParseFlexBool("yes").Bool())
}
