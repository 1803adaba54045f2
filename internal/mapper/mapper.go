package mapper

import (
	"github.com/slateworks/budget-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(project *domain.Project) domain.ProjectDTO {
	return domain.ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		ProjectCode: project.ProjectCode,
		Ruleset:     project.Ruleset,
		Status:      project.Status,
		TotalBudget: project.TotalBudget,
		TotalSpent:  project.TotalSpent,
		Tags:        project.Tags,
		LineCount:   len(project.Lines),
		CreatedAt:   project.CreatedAt.Format(timeFormat),
		UpdatedAt:   project.UpdatedAt.Format(timeFormat),
	}
}

// ToProjectWithLinesDTO converts Project with preloaded lines and fringe rules
func ToProjectWithLinesDTO(project *domain.Project) domain.ProjectWithLinesDTO {
	dto := domain.ProjectWithLinesDTO{
		ProjectDTO: ToProjectDTO(project),
		Lines:      make([]domain.BudgetLineDTO, len(project.Lines)),
	}
	for i := range project.Lines {
		dto.Lines[i] = ToBudgetLineDTO(&project.Lines[i])
	}
	if len(project.FringeRules) > 0 {
		dto.FringeRules = make([]domain.FringeRuleDTO, len(project.FringeRules))
		for i := range project.FringeRules {
			dto.FringeRules[i] = ToFringeRuleDTO(&project.FringeRules[i])
		}
	}
	return dto
}

// ToBudgetLineDTO converts BudgetLine to BudgetLineDTO
func ToBudgetLineDTO(line *domain.BudgetLine) domain.BudgetLineDTO {
	dto := domain.BudgetLineDTO{
		ID:            line.ID,
		ProjectID:     line.ProjectID,
		Category:      line.Category,
		LineNumber:    line.LineNumber,
		Description:   line.Description,
		Quantity:      line.Quantity,
		Days:          line.Days,
		Rate:          line.Rate,
		OT15:          line.OT15,
		OT2:           line.OT2,
		OT25:          line.OT25,
		OTHours:       line.OTHours,
		MidnightHours: line.MidnightHours,
		Estimate:      line.Estimate,
		ActualSpent:   line.ActualSpent,
		RunningAmount: line.RunningAmount,
		PayeeID:       line.PayeeID,
		FringeRuleID:  line.FringeRuleID,
		CreatedAt:     line.CreatedAt.Format(timeFormat),
		UpdatedAt:     line.UpdatedAt.Format(timeFormat),
	}
	if line.Payee != nil {
		dto.PayeeName = line.Payee.Name
	}
	return dto
}

// ToFringeRuleDTO converts FringeRule to FringeRuleDTO
func ToFringeRuleDTO(rule *domain.FringeRule) domain.FringeRuleDTO {
	return domain.FringeRuleDTO{
		ID:         rule.ID,
		ProjectID:  rule.ProjectID,
		Name:       rule.Name,
		Percentage: rule.Percentage,
		CreatedAt:  rule.CreatedAt.Format(timeFormat),
	}
}

// ToInvoiceDTO converts Invoice to InvoiceDTO
func ToInvoiceDTO(invoice *domain.Invoice) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:            invoice.ID,
		ProjectID:     invoice.ProjectID,
		BudgetLineID:  invoice.BudgetLineID,
		PayeeID:       invoice.PayeeID,
		Amount:        invoice.Amount,
		Status:        invoice.Status,
		Reference:     invoice.Reference,
		Notes:         invoice.Notes,
		HasAttachment: invoice.AttachmentPath != "",
		CreatedAt:     invoice.CreatedAt.Format(timeFormat),
		UpdatedAt:     invoice.UpdatedAt.Format(timeFormat),
	}
	if invoice.Project != nil {
		dto.ProjectName = invoice.Project.Name
	}
	if invoice.Payee != nil {
		dto.PayeeName = invoice.Payee.Name
	}
	return dto
}

// ToPayeeDTO converts Payee to PayeeDTO
func ToPayeeDTO(payee *domain.Payee) domain.PayeeDTO {
	return domain.PayeeDTO{
		ID:        payee.ID,
		Name:      payee.Name,
		Email:     payee.Email,
		Phone:     payee.Phone,
		Company:   payee.Company,
		IsActive:  payee.IsActive,
		CreatedAt: payee.CreatedAt.Format(timeFormat),
		UpdatedAt: payee.UpdatedAt.Format(timeFormat),
	}
}
