package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the ID client-side so inserts work the same on every
// database backend.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// RulesetKind selects the calculation ruleset for a project's budget lines
type RulesetKind string

const (
	RulesetFlatRate RulesetKind = "FLAT_RATE"
	RulesetAPA      RulesetKind = "APA"
)

// ParseRulesetKind resolves a stored ruleset string case-insensitively.
// Unknown or empty values resolve to FLAT_RATE; the second return value tells
// the caller whether the input was recognized so it can log the fallback.
func ParseRulesetKind(s string) (RulesetKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RulesetFlatRate):
		return RulesetFlatRate, true
	case string(RulesetAPA):
		return RulesetAPA, true
	}
	return RulesetFlatRate, false
}

// ProjectStatus represents the production status of a project
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusWrapped  ProjectStatus = "wrapped"
	ProjectStatusArchived ProjectStatus = "archived"
)

// IsValid checks if the ProjectStatus is a valid enum value
func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectStatusActive, ProjectStatusWrapped, ProjectStatusArchived:
		return true
	}
	return false
}

// User represents an account that owns projects and payees
type User struct {
	BaseModel
	Email       string `gorm:"type:varchar(255);not null;unique"`
	DisplayName string `gorm:"type:varchar(200);not null;column:name"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active"`
}

// Payee represents a vendor or crew contact that invoices can reference.
// Email is the matching key for externally submitted invoices and is compared
// case-insensitively.
type Payee struct {
	BaseModel
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id"`
	Owner    *User     `gorm:"foreignKey:OwnerID"`
	Name     string    `gorm:"type:varchar(200);not null;index"`
	Email    string    `gorm:"type:varchar(255);not null;index"`
	Phone    string    `gorm:"type:varchar(50)"`
	Company  string    `gorm:"type:varchar(200)"`
	IsActive bool      `gorm:"not null;default:true;column:is_active"`
}

// Project represents a production with a budget
type Project struct {
	BaseModel
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_projects_owner_code,unique;column:owner_id"`
	Owner       *User          `gorm:"foreignKey:OwnerID"`
	Name        string         `gorm:"type:varchar(200);not null;index"`
	ProjectCode string         `gorm:"type:varchar(50);not null;index:idx_projects_owner_code,unique;column:project_code"`
	Ruleset     string         `gorm:"type:varchar(50);not null;default:'FLAT_RATE'"`
	Status      ProjectStatus  `gorm:"type:varchar(50);not null;default:'active';index"`
	TotalBudget float64        `gorm:"type:decimal(15,2);not null;default:0;column:total_budget"`
	TotalSpent  float64        `gorm:"type:decimal(15,2);not null;default:0;column:total_spent"`
	Tags        pq.StringArray `gorm:"type:text[]"`
	Lines       []BudgetLine   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	FringeRules []FringeRule   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// BudgetLineCategory is a free-form grouping tag (pre/production/post); it has
// no effect on calculation.
type BudgetLineCategory string

const (
	CategoryPreProduction  BudgetLineCategory = "pre_production"
	CategoryProduction     BudgetLineCategory = "production"
	CategoryPostProduction BudgetLineCategory = "post_production"
)

// BudgetLine represents a single budget line item within a project.
//
// Estimate and ActualSpent are derived fields maintained by the reconcile
// service; RunningAmount is a manually tracked figure that the engine never
// touches.
type BudgetLine struct {
	BaseModel
	ProjectID     uuid.UUID          `gorm:"type:uuid;not null;index;column:project_id"`
	Project       *Project           `gorm:"foreignKey:ProjectID"`
	Category      BudgetLineCategory `gorm:"type:varchar(50);not null;default:'production';index"`
	LineNumber    int                `gorm:"not null;default:0;column:line_number"`
	Description   string             `gorm:"type:varchar(500)"`
	Quantity      float64            `gorm:"type:decimal(10,2);not null;default:0"`
	Days          float64            `gorm:"type:decimal(10,2);not null;default:0"`
	Rate          float64            `gorm:"type:decimal(15,2);not null;default:0"`
	OT15          float64            `gorm:"type:decimal(10,2);not null;default:0;column:ot_1_5"`
	OT2           float64            `gorm:"type:decimal(10,2);not null;default:0;column:ot_2"`
	OT25          float64            `gorm:"type:decimal(10,2);not null;default:0;column:ot_2_5"`
	OTHours       float64            `gorm:"type:decimal(10,2);not null;default:0;column:ot_hours"`
	MidnightHours float64            `gorm:"type:decimal(10,2);not null;default:0;column:midnight_hours"`
	Estimate      float64            `gorm:"type:decimal(15,2);not null;default:0"`
	ActualSpent   float64            `gorm:"type:decimal(15,2);not null;default:0;column:actual_spent"`
	RunningAmount float64            `gorm:"type:decimal(15,2);not null;default:0;column:running_amount"`
	PayeeID       *uuid.UUID         `gorm:"type:uuid;index;column:payee_id"`
	Payee         *Payee             `gorm:"foreignKey:PayeeID"`
	FringeRuleID  *uuid.UUID         `gorm:"type:uuid;column:fringe_rule_id"`
	FringeRule    *FringeRule        `gorm:"foreignKey:FringeRuleID"`
}

// FringeRule represents a percentage surcharge (payroll tax, benefits loading)
// applied on top of a line's base ruleset estimate
type FringeRule struct {
	BaseModel
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index;column:project_id"`
	Project    *Project  `gorm:"foreignKey:ProjectID"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Percentage float64   `gorm:"type:decimal(5,2);not null;default:0"`
}

// InvoiceStatus represents the approval lifecycle of an invoice
type InvoiceStatus string

const (
	InvoiceStatusMissing         InvoiceStatus = "MISSING"
	InvoiceStatusWaitingApproval InvoiceStatus = "WAITING_APPROVAL"
	InvoiceStatusApproved        InvoiceStatus = "APPROVED"
	InvoiceStatusFlagged         InvoiceStatus = "FLAGGED"
	InvoiceStatusPaid            InvoiceStatus = "PAID"
)

// IsValid checks if the InvoiceStatus is a valid enum value
func (is InvoiceStatus) IsValid() bool {
	switch is {
	case InvoiceStatusMissing, InvoiceStatusWaitingApproval, InvoiceStatusApproved,
		InvoiceStatusFlagged, InvoiceStatusPaid:
		return true
	}
	return false
}

// CountsTowardSpent reports whether invoices in this status are included in
// actual_spent / total_spent aggregates
func (is InvoiceStatus) CountsTowardSpent() bool {
	return is == InvoiceStatusApproved || is == InvoiceStatusPaid
}

// Invoice represents a bill submitted against a project. Both ProjectID and
// BudgetLineID are nullable: an invoice may exist fully unassigned. Amount is
// fixed at creation and never recalculated.
type Invoice struct {
	BaseModel
	ProjectID      *uuid.UUID    `gorm:"type:uuid;index;column:project_id"`
	Project        *Project      `gorm:"foreignKey:ProjectID"`
	BudgetLineID   *uuid.UUID    `gorm:"type:uuid;index;column:budget_line_id"`
	BudgetLine     *BudgetLine   `gorm:"foreignKey:BudgetLineID"`
	PayeeID        *uuid.UUID    `gorm:"type:uuid;index;column:payee_id"`
	Payee          *Payee        `gorm:"foreignKey:PayeeID"`
	Amount         float64       `gorm:"type:decimal(15,2);not null"`
	Status         InvoiceStatus `gorm:"type:varchar(50);not null;default:'WAITING_APPROVAL';index"`
	Reference      string        `gorm:"type:varchar(200)"`
	Notes          string        `gorm:"type:text"`
	AttachmentPath string        `gorm:"type:varchar(500);column:attachment_path"`
}
