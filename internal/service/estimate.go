package service

import (
	"go.uber.org/zap"

	"github.com/slateworks/budget-api/internal/domain"
	"github.com/slateworks/budget-api/internal/ruleset"
)

// computeLineEstimate derives a line's estimate from its raw numeric inputs
// through the project's ruleset, then applies the fringe surcharge when a rule
// is assigned. The fringe always applies to the unadjusted ruleset output so
// rule reassignment never compounds.
//
// An unrecognized ruleset string degrades to flat rate with a warning. This is
// the one permitted silent fallback.
func computeLineEstimate(rulesetName string, line *domain.BudgetLine, fringe *domain.FringeRule, logger *zap.Logger) float64 {
	kind, ok := domain.ParseRulesetKind(rulesetName)
	if !ok {
		logger.Warn("Unknown ruleset, falling back to flat rate",
			zap.String("ruleset", rulesetName),
			zap.String("lineId", line.ID.String()))
	}
	base := ruleset.Estimate(kind, ruleset.FromLine(line))
	if fringe != nil {
		return ruleset.ApplyFringe(base, fringe.Percentage)
	}
	return base
}
