package ruleset

// APA overtime tier boundaries. Both boundaries are inclusive on the lower
// tier: a rate of exactly 426 pays 1.5x, exactly 650 pays 1.25x.
const (
	apaTier1MaxRate = 426.0
	apaTier2MaxRate = 650.0
)

// apaBaseHourlyRate is the hourly unit for APA overtime, a tenth of the daily
// rate.
func apaBaseHourlyRate(rate float64) float64 {
	return rate / 10.0
}

// apaTierMultiplier returns the general overtime multiplier for a daily rate.
func apaTierMultiplier(rate float64) float64 {
	switch {
	case rate <= apaTier1MaxRate:
		return 1.5
	case rate <= apaTier2MaxRate:
		return 1.25
	default:
		return 1.0
	}
}

func apaEstimate(in Inputs) float64 {
	regular := in.Quantity * in.Days * in.Rate
	return regular + apaOvertime(in)
}

func apaOvertime(in Inputs) float64 {
	bhr := apaBaseHourlyRate(in.Rate)
	general := in.Quantity * in.OTHours * bhr * apaTierMultiplier(in.Rate)
	midnight := in.Quantity * in.MidnightHours * bhr * 3.0
	return general + midnight
}
