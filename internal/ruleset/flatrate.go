package ruleset

// Flat-rate: regular pay is days at the daily rate; overtime units are counted
// per bracket and billed at 1.5x, 2x and 2.5x the rate. Quantity does not
// participate in the flat-rate formula.

func flatRateEstimate(in Inputs) float64 {
	return in.Days*in.Rate + flatRateOvertime(in)
}

func flatRateOvertime(in Inputs) float64 {
	return in.OT15*in.Rate*1.5 + in.OT2*in.Rate*2.0 + in.OT25*in.Rate*2.5
}
