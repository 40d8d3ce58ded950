package dto

// Decision is the verdict of the setup decision gate. Wait is only the
// pre-evaluation default; the gate itself returns Enter or Skip.
type Decision string

const (
	DecisionWait  Decision = "wait"
	DecisionEnter Decision = "enter"
	DecisionSkip  Decision = "skip"
)

// Grade is the letter grade assigned by the setup grader.
type Grade string

const (
	GradeC     Grade = "C"
	GradeB     Grade = "B"
	GradeA     Grade = "A"
	GradeAPlus Grade = "A+"
)

// Rank returns the ordinal position of a grade (C < B < A < A+). An unknown
// grade ranks as A+, the most restrictive interpretation, so a misconfigured
// require_grade tightens the gate instead of opening it.
func (g Grade) Rank() int {
	switch g {
	case GradeC:
		return 0
	case GradeB:
		return 1
	case GradeA:
		return 2
	default:
		return 3
	}
}

// SetupScore is the output of the setup grader.
type SetupScore struct {
	Score int   `json:"score"`
	Grade Grade `json:"grade"`
}

// SetupEvaluation is the JSON payload produced by one pass through the
// decision gate.
type SetupEvaluation struct {
	Decision Decision     `json:"decision"`
	Grade    Grade        `json:"grade"`
	Score    int          `json:"score"`
	Rule     string       `json:"rule"`
	Risk     *RiskProfile `json:"risk,omitempty"`
	Stats    *RuleReport  `json:"rule_stats,omitempty"`
	Reasons  []string     `json:"reasons"`
}

// EvaluateRequest carries one setup through the decision gate. The advisor
// parameters override the configured defaults when set.
type EvaluateRequest struct {
	Row MergedRow `json:"row" validate:"required"`

	RemainingDrawdown *float64 `json:"remaining_drawdown,omitempty"`
	RiskCapPct        *float64 `json:"risk_cap_pct,omitempty"`
	RequireGrade      *string  `json:"require_grade,omitempty"`
	RequireMicro      *bool    `json:"require_micro,omitempty"`
}
