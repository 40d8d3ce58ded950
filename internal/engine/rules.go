package engine

import (
	"strings"
	"trading-journal/internal/dto"
)

// Registered rule keys.
const (
	RuleIFVGEntry     = "ifvg_entry"
	RuleMSSConfirm    = "mss_confirmation"
	RulePOIMidpoint   = "poi_midpoint"
	RuleSweepReversal = "sweep_reversal"
)

// ZoneKind names the annotated zone a simulation rule enters from.
type ZoneKind string

const (
	ZonePOI  ZoneKind = "poi"
	ZoneIFVG ZoneKind = "ifvg"
)

// SimSpec describes the alternate-entry definition of a simulation rule:
// entry at the zone midpoint, stop at the zone edge against the trade
// direction, target at the projected target with the structure-break level
// as fallback.
type SimSpec struct {
	Zone ZoneKind
}

// Rule is one entry in the static rule registry. Match is the membership
// predicate used for aggregation filtering; it is keyed by Key and must stay
// in sync with the registry by identifier, not by position.
type Rule struct {
	Key   string
	Label string
	Match func(row *dto.MergedRow) bool
	Sim   *SimSpec
}

// Registry is a static, ordered rule table. Order is correctness-relevant:
// selection walks a fixed priority sequence and falls back to the first
// registered rule.
type Registry struct {
	rules      []Rule
	index      map[string]int
	defaultKey string
}

// NewRegistry builds a registry preserving the given rule order.
func NewRegistry(defaultKey string, rules ...Rule) *Registry {
	index := make(map[string]int, len(rules))
	for i, rule := range rules {
		index[rule.Key] = i
	}
	return &Registry{rules: rules, index: index, defaultKey: defaultKey}
}

// DefaultRegistry returns the built-in rule table.
func DefaultRegistry() *Registry {
	return NewRegistry(
		RulePOIMidpoint,
		Rule{
			Key:   RuleIFVGEntry,
			Label: "IFVG midpoint entry",
			Match: func(row *dto.MergedRow) bool {
				return row.HasIFVG() || row.IFVGPresent.Bool() || containsFold(row.EntryMethod, "ifvg")
			},
			Sim: &SimSpec{Zone: ZoneIFVG},
		},
		Rule{
			Key:   RuleMSSConfirm,
			Label: "MSS confirmation entry",
			Match: func(row *dto.MergedRow) bool {
				return row.MicroShift.Bool() || containsFold(row.EntryMethod, "mss")
			},
			Sim: &SimSpec{Zone: ZonePOI},
		},
		Rule{
			Key:   RulePOIMidpoint,
			Label: "POI midpoint entry",
			Match: func(row *dto.MergedRow) bool {
				return row.HasPOI()
			},
			Sim: &SimSpec{Zone: ZonePOI},
		},
		Rule{
			Key:   RuleSweepReversal,
			Label: "Liquidity sweep reversal",
			Match: func(row *dto.MergedRow) bool {
				return row.SweepTaken.Bool()
			},
		},
	)
}

// Rules returns the registry in registration order.
func (g *Registry) Rules() []Rule {
	return g.rules
}

// Get resolves a rule by key.
func (g *Registry) Get(key string) (Rule, bool) {
	i, ok := g.index[key]
	if !ok {
		return Rule{}, false
	}
	return g.rules[i], true
}

// SelectRule resolves the applicable rule for one row. Selection is
// first-match-wins over a fixed priority order: the imbalance-specific rule,
// then the micro-structure rule, then the configured default, then the first
// registered rule.
func (g *Registry) SelectRule(row *dto.MergedRow) string {
	method := strings.ToLower(row.EntryMethod)

	if _, ok := g.index[RuleIFVGEntry]; ok && strings.Contains(method, "ifvg") {
		return RuleIFVGEntry
	}
	if _, ok := g.index[RuleMSSConfirm]; ok && (row.MicroShift.Bool() || strings.Contains(method, "mss")) {
		return RuleMSSConfirm
	}
	if _, ok := g.index[g.defaultKey]; ok {
		return g.defaultKey
	}
	if len(g.rules) > 0 {
		return g.rules[0].Key
	}
	return ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
