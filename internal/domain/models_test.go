package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slateworks/budget-api/internal/domain"
)

func TestParseRulesetKind(t *testing.T) {
	tests := []struct {
		input      string
		want       domain.RulesetKind
		recognized bool
	}{
		{"FLAT_RATE", domain.RulesetFlatRate, true},
		{"flat_rate", domain.RulesetFlatRate, true},
		{"APA", domain.RulesetAPA, true},
		{"apa", domain.RulesetAPA, true},
		{"  Apa  ", domain.RulesetAPA, true},
		{"", domain.RulesetFlatRate, false},
		{"CUSTOM_2019", domain.RulesetFlatRate, false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseRulesetKind(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.recognized, ok, "input %q", tt.input)
	}
}

func TestProjectStatus_IsValid(t *testing.T) {
	assert.True(t, domain.ProjectStatusActive.IsValid())
	assert.True(t, domain.ProjectStatusWrapped.IsValid())
	assert.True(t, domain.ProjectStatusArchived.IsValid())
	assert.False(t, domain.ProjectStatus("paused").IsValid())
	assert.False(t, domain.ProjectStatus("").IsValid())
}

func TestInvoiceStatus_CountsTowardSpent(t *testing.T) {
	counting := []domain.InvoiceStatus{
		domain.InvoiceStatusApproved,
		domain.InvoiceStatusPaid,
	}
	nonCounting := []domain.InvoiceStatus{
		domain.InvoiceStatusMissing,
		domain.InvoiceStatusWaitingApproval,
		domain.InvoiceStatusFlagged,
	}

	for _, s := range counting {
		assert.True(t, s.CountsTowardSpent(), "status %s", s)
	}
	for _, s := range nonCounting {
		assert.False(t, s.CountsTowardSpent(), "status %s", s)
	}
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	assert.True(t, domain.InvoiceStatusWaitingApproval.IsValid())
	assert.True(t, domain.InvoiceStatusFlagged.IsValid())
	assert.False(t, domain.InvoiceStatus("pending").IsValid())
}
