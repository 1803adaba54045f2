// Package ruleset implements the calculation rulesets that turn a budget
// line's raw numeric inputs into a monetary estimate. The ruleset set is fixed
// (flat-rate and APA), so dispatch is a closed switch over domain.RulesetKind
// rather than a registry.
//
// All functions are pure: no clamping, no rounding, no validation. Negative
// inputs are a caller concern; amounts keep full float64 precision and are
// rounded only for display.
package ruleset

import (
	"github.com/slateworks/budget-api/internal/domain"
)

// Inputs holds the numeric fields a ruleset reads from a budget line.
// Absent fields are zero.
type Inputs struct {
	Quantity      float64
	Days          float64
	Rate          float64
	OT15          float64
	OT2           float64
	OT25          float64
	OTHours       float64
	MidnightHours float64
}

// FromLine extracts calculation inputs from a budget line.
func FromLine(line *domain.BudgetLine) Inputs {
	return Inputs{
		Quantity:      line.Quantity,
		Days:          line.Days,
		Rate:          line.Rate,
		OT15:          line.OT15,
		OT2:           line.OT2,
		OT25:          line.OT25,
		OTHours:       line.OTHours,
		MidnightHours: line.MidnightHours,
	}
}

// Estimate returns the total estimate (regular pay plus overtime) for the
// given ruleset.
func Estimate(kind domain.RulesetKind, in Inputs) float64 {
	switch kind {
	case domain.RulesetAPA:
		return apaEstimate(in)
	default:
		return flatRateEstimate(in)
	}
}

// Overtime returns only the overtime portion of the estimate for the given
// ruleset.
func Overtime(kind domain.RulesetKind, in Inputs) float64 {
	switch kind {
	case domain.RulesetAPA:
		return apaOvertime(in)
	default:
		return flatRateOvertime(in)
	}
}

// Name returns the canonical display name of a ruleset.
func Name(kind domain.RulesetKind) string {
	switch kind {
	case domain.RulesetAPA:
		return "APA"
	default:
		return "Flat Rate"
	}
}
