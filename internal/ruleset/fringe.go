package ruleset

// ApplyFringe adds a percentage surcharge to a base estimate. The base must be
// the raw ruleset output, never an already-adjusted estimate; callers that
// reassign fringe rules recompute from the line's numeric inputs first.
func ApplyFringe(baseEstimate, fringePercentage float64) float64 {
	return baseEstimate * (1.0 + fringePercentage/100.0)
}
