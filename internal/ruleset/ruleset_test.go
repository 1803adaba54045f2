package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slateworks/budget-api/internal/domain"
)

func TestFlatRateEstimate(t *testing.T) {
	t.Run("regular pay only", func(t *testing.T) {
		in := Inputs{Days: 5, Rate: 400}
		assert.InDelta(t, 2000.0, Estimate(domain.RulesetFlatRate, in), 1e-9)
		assert.InDelta(t, 0.0, Overtime(domain.RulesetFlatRate, in), 1e-9)
	})

	t.Run("overtime brackets", func(t *testing.T) {
		in := Inputs{Days: 2, Rate: 100, OT15: 1, OT2: 2, OT25: 3}
		// 2*100 + 1*100*1.5 + 2*100*2 + 3*100*2.5
		assert.InDelta(t, 1500.0, Estimate(domain.RulesetFlatRate, in), 1e-9)
		assert.InDelta(t, 1300.0, Overtime(domain.RulesetFlatRate, in), 1e-9)
	})

	t.Run("quantity does not multiply the estimate", func(t *testing.T) {
		base := Inputs{Days: 3, Rate: 250}
		withQty := base
		withQty.Quantity = 4
		assert.Equal(t, Estimate(domain.RulesetFlatRate, base), Estimate(domain.RulesetFlatRate, withQty))
	})

	t.Run("zero inputs", func(t *testing.T) {
		assert.Zero(t, Estimate(domain.RulesetFlatRate, Inputs{}))
	})
}

func TestAPAEstimate(t *testing.T) {
	t.Run("regular pay", func(t *testing.T) {
		in := Inputs{Quantity: 2, Days: 5, Rate: 700}
		assert.InDelta(t, 7000.0, Estimate(domain.RulesetAPA, in), 1e-9)
	})

	t.Run("general overtime uses bhr and tier multiplier", func(t *testing.T) {
		// bhr = 40, tier 1.5 => 1*4*40*1.5 = 240
		in := Inputs{Quantity: 1, OTHours: 4, Rate: 400}
		assert.InDelta(t, 240.0, Overtime(domain.RulesetAPA, in), 1e-9)
	})

	t.Run("midnight overtime is always triple bhr", func(t *testing.T) {
		// bhr = 100, 1*2*100*3 = 600
		in := Inputs{Quantity: 1, MidnightHours: 2, Rate: 1000}
		assert.InDelta(t, 600.0, Overtime(domain.RulesetAPA, in), 1e-9)
	})

	t.Run("estimate sums regular and overtime", func(t *testing.T) {
		in := Inputs{Quantity: 2, Days: 3, Rate: 500, OTHours: 2, MidnightHours: 1}
		// regular = 2*3*500 = 3000; bhr = 50
		// general = 2*2*50*1.25 = 250; midnight = 2*1*50*3 = 300
		assert.InDelta(t, 3550.0, Estimate(domain.RulesetAPA, in), 1e-9)
	})
}

func TestAPATierBoundaries(t *testing.T) {
	cases := []struct {
		rate float64
		want float64
	}{
		{rate: 100, want: 1.5},
		{rate: 426, want: 1.5},
		{rate: 427, want: 1.25},
		{rate: 650, want: 1.25},
		{rate: 651, want: 1.0},
		{rate: 2000, want: 1.0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apaTierMultiplier(tc.rate), "rate %.0f", tc.rate)
	}
}

func TestApplyFringe(t *testing.T) {
	t.Run("percentage surcharge", func(t *testing.T) {
		assert.InDelta(t, 1150.0, ApplyFringe(1000, 15), 1e-9)
	})

	t.Run("zero percentage is identity", func(t *testing.T) {
		assert.Equal(t, 1000.0, ApplyFringe(1000, 0))
	})

	t.Run("reassignment never compounds", func(t *testing.T) {
		base := Estimate(domain.RulesetFlatRate, Inputs{Days: 4, Rate: 500})
		afterA := ApplyFringe(base, 20)
		// switching rules recomputes from base, not from afterA
		afterB := ApplyFringe(base, 10)
		assert.InDelta(t, base*1.10, afterB, 1e-9)
		assert.NotEqual(t, ApplyFringe(afterA, 10), afterB)
	})
}

func TestUnknownRulesetFallsBackToFlatRate(t *testing.T) {
	kind, ok := domain.ParseRulesetKind("CUSTOM")
	assert.False(t, ok)
	assert.Equal(t, domain.RulesetFlatRate, kind)

	in := Inputs{Days: 3, Rate: 200, OT15: 1}
	assert.Equal(t, Estimate(domain.RulesetFlatRate, in), Estimate(kind, in))
}

func TestParseRulesetKind(t *testing.T) {
	cases := []struct {
		in   string
		want domain.RulesetKind
		ok   bool
	}{
		{"FLAT_RATE", domain.RulesetFlatRate, true},
		{"flat_rate", domain.RulesetFlatRate, true},
		{" apa ", domain.RulesetAPA, true},
		{"APA", domain.RulesetAPA, true},
		{"", domain.RulesetFlatRate, false},
		{"CUSTOM", domain.RulesetFlatRate, false},
	}
	for _, tc := range cases {
		kind, ok := domain.ParseRulesetKind(tc.in)
		assert.Equal(t, tc.want, kind, "input %q", tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "Flat Rate", Name(domain.RulesetFlatRate))
	assert.Equal(t, "APA", Name(domain.RulesetAPA))
}
