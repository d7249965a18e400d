package services

import (
	"gorm.io/gorm"

	"employee-records-api/models"
)

// The four record families share one engine and differ only in these configs.
var (
	EmployeeDomain = Domain{
		Name:           "employee",
		Label:          "Employee",
		AssignsSubject: true,
	}
	AadharDomain = Domain{
		Name:           "aadhar",
		Label:          "Aadhar",
		UniquePending:  true,
		RequireSubject: true,
	}
	PanDomain = Domain{
		Name:           "pan",
		Label:          "PAN",
		RequireSubject: true,
	}
	BankDetailDomain = Domain{
		Name:           "bankdetail",
		Label:          "Bank detail",
		RequireSubject: true,
	}
)

// Workflows bundles the per-family engines.
type Workflows struct {
	Employee   *Workflow[models.EmployeeProfile]
	Aadhar     *Workflow[models.AadharCard]
	Pan        *Workflow[models.PanCard]
	BankDetail *Workflow[models.BankAccount]
}

func NewWorkflows(db *gorm.DB, opts ...WorkflowOption) *Workflows {
	return &Workflows{
		Employee:   NewWorkflow[models.EmployeeProfile](db, EmployeeDomain, opts...),
		Aadhar:     NewWorkflow[models.AadharCard](db, AadharDomain, opts...),
		Pan:        NewWorkflow[models.PanCard](db, PanDomain, opts...),
		BankDetail: NewWorkflow[models.BankAccount](db, BankDetailDomain, opts...),
	}
}

// DomainNames lists the family keys in route order.
func DomainNames() []string {
	return []string{EmployeeDomain.Name, AadharDomain.Name, PanDomain.Name, BankDetailDomain.Name}
}
