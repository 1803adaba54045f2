package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

type ProjectDTO struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	ProjectCode string        `json:"projectCode"`
	Ruleset     string        `json:"ruleset"`
	Status      ProjectStatus `json:"status"`
	TotalBudget float64       `json:"totalBudget"`
	TotalSpent  float64       `json:"totalSpent"`
	Tags        []string      `json:"tags,omitempty"`
	LineCount   int           `json:"lineCount,omitempty"`
	CreatedAt   string        `json:"createdAt"` // ISO 8601
	UpdatedAt   string        `json:"updatedAt"` // ISO 8601
}

// ProjectWithLinesDTO includes the project's budget lines and fringe rules
type ProjectWithLinesDTO struct {
	ProjectDTO
	Lines       []BudgetLineDTO `json:"lines"`
	FringeRules []FringeRuleDTO `json:"fringeRules,omitempty"`
}

type BudgetLineDTO struct {
	ID            uuid.UUID          `json:"id"`
	ProjectID     uuid.UUID          `json:"projectId"`
	Category      BudgetLineCategory `json:"category"`
	LineNumber    int                `json:"lineNumber"`
	Description   string             `json:"description,omitempty"`
	Quantity      float64            `json:"quantity"`
	Days          float64            `json:"days"`
	Rate          float64            `json:"rate"`
	OT15          float64            `json:"ot1_5"`
	OT2           float64            `json:"ot2"`
	OT25          float64            `json:"ot2_5"`
	OTHours       float64            `json:"otHours"`
	MidnightHours float64            `json:"midnightHours"`
	Estimate      float64            `json:"estimate"`
	ActualSpent   float64            `json:"actualSpent"`
	RunningAmount float64            `json:"runningAmount"`
	PayeeID       *uuid.UUID         `json:"payeeId,omitempty"`
	PayeeName     string             `json:"payeeName,omitempty"`
	FringeRuleID  *uuid.UUID         `json:"fringeRuleId,omitempty"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

type FringeRuleDTO struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	Name       string    `json:"name"`
	Percentage float64   `json:"percentage"`
	CreatedAt  string    `json:"createdAt"`
}

type InvoiceDTO struct {
	ID             uuid.UUID     `json:"id"`
	ProjectID      *uuid.UUID    `json:"projectId,omitempty"`
	ProjectName    string        `json:"projectName,omitempty"`
	BudgetLineID   *uuid.UUID    `json:"budgetLineId,omitempty"`
	PayeeID        *uuid.UUID    `json:"payeeId,omitempty"`
	PayeeName      string        `json:"payeeName,omitempty"`
	Amount         float64       `json:"amount"`
	Status         InvoiceStatus `json:"status"`
	Reference      string        `json:"reference,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	HasAttachment  bool          `json:"hasAttachment"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
}

type PayeeDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// SubmissionResultDTO is returned to an external, unauthenticated submitter.
// Only safe-to-display fields are included.
type SubmissionResultDTO struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	PayeeName   string    `json:"payeeName"`
	ProjectName string    `json:"projectName"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Request DTOs

type CreateProjectRequest struct {
	Name        string                     `json:"name" validate:"required,max=200"`
	ProjectCode string                     `json:"projectCode" validate:"required,max=50"`
	Ruleset     string                     `json:"ruleset,omitempty" validate:"max=50"`
	Tags        []string                   `json:"tags,omitempty"`
	Lines       []CreateBudgetLineRequest  `json:"lines,omitempty" validate:"omitempty,dive"`
}

type UpdateProjectRequest struct {
	Name    string   `json:"name" validate:"required,max=200"`
	Ruleset string   `json:"ruleset,omitempty" validate:"max=50"`
	Tags    []string `json:"tags,omitempty"`
}

type UpdateProjectStatusRequest struct {
	Status ProjectStatus `json:"status" validate:"required"`
}

type CreateBudgetLineRequest struct {
	Category      BudgetLineCategory `json:"category,omitempty"`
	Description   string             `json:"description,omitempty" validate:"max=500"`
	Quantity      float64            `json:"quantity,omitempty" validate:"gte=0"`
	Days          float64            `json:"days,omitempty" validate:"gte=0"`
	Rate          float64            `json:"rate,omitempty" validate:"gte=0"`
	OT15          float64            `json:"ot1_5,omitempty" validate:"gte=0"`
	OT2           float64            `json:"ot2,omitempty" validate:"gte=0"`
	OT25          float64            `json:"ot2_5,omitempty" validate:"gte=0"`
	OTHours       float64            `json:"otHours,omitempty" validate:"gte=0"`
	MidnightHours float64            `json:"midnightHours,omitempty" validate:"gte=0"`
	RunningAmount float64            `json:"runningAmount,omitempty" validate:"gte=0"`
	PayeeID       *uuid.UUID         `json:"payeeId,omitempty"`
	FringeRuleID  *uuid.UUID         `json:"fringeRuleId,omitempty"`
}

type UpdateBudgetLineRequest struct {
	Category      BudgetLineCategory `json:"category,omitempty"`
	Description   string             `json:"description,omitempty" validate:"max=500"`
	Quantity      float64            `json:"quantity" validate:"gte=0"`
	Days          float64            `json:"days" validate:"gte=0"`
	Rate          float64            `json:"rate" validate:"gte=0"`
	OT15          float64            `json:"ot1_5" validate:"gte=0"`
	OT2           float64            `json:"ot2" validate:"gte=0"`
	OT25          float64            `json:"ot2_5" validate:"gte=0"`
	OTHours       float64            `json:"otHours" validate:"gte=0"`
	MidnightHours float64            `json:"midnightHours" validate:"gte=0"`
	RunningAmount float64            `json:"runningAmount" validate:"gte=0"`
	PayeeID       *uuid.UUID         `json:"payeeId,omitempty"`
}

// AssignFringeRequest assigns or clears a line's fringe rule. A null
// fringeRuleId resets the estimate to the unadjusted ruleset output.
type AssignFringeRequest struct {
	FringeRuleID *uuid.UUID `json:"fringeRuleId"`
}

// ReorderLinesRequest renumbers a project's lines to the given order
type ReorderLinesRequest struct {
	LineIDs []uuid.UUID `json:"lineIds" validate:"required,min=1"`
}

type CreateFringeRuleRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

type UpdateFringeRuleRequest struct {
	Name       string  `json:"name" validate:"required,max=200"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

type CreateInvoiceRequest struct {
	ProjectID    *uuid.UUID    `json:"projectId,omitempty"`
	BudgetLineID *uuid.UUID    `json:"budgetLineId,omitempty"`
	PayeeID      *uuid.UUID    `json:"payeeId,omitempty"`
	Amount       float64       `json:"amount" validate:"required,gt=0"`
	Status       InvoiceStatus `json:"status,omitempty"`
	Reference    string        `json:"reference,omitempty" validate:"max=200"`
	Notes        string        `json:"notes,omitempty" validate:"max=2000"`
}

type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status" validate:"required"`
}

// ReassignInvoiceRequest moves an invoice to a different project and/or line.
// Null values detach.
type ReassignInvoiceRequest struct {
	ProjectID    *uuid.UUID `json:"projectId"`
	BudgetLineID *uuid.UUID `json:"budgetLineId"`
}

type CreatePayeeRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Company string `json:"company,omitempty" validate:"max=200"`
}

type UpdatePayeeRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone,omitempty" validate:"max=50"`
	Company  string `json:"company,omitempty" validate:"max=200"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// SubmitInvoiceRequest is the public, unauthenticated submission payload.
type SubmitInvoiceRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	ProjectCode string  `json:"projectCode" validate:"required,max=50"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Reference   string  `json:"reference,omitempty" validate:"max=200"`
	Notes       string  `json:"notes,omitempty" validate:"max=2000"`
}
