package services

import (
	"context"
	"slices"

	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/models"
)

// AuditService reads the approval history written by the workflows.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	if db == nil {
		db = config.DB
	}
	return &AuditService{db: db}
}

// History returns the events of one family for a subject, oldest first.
func (s *AuditService) History(ctx context.Context, domain, employeeID string) ([]models.ApprovalEvent, error) {
	if !slices.Contains(DomainNames(), domain) {
		return nil, validationError("unknown record type %q", domain)
	}

	events := make([]models.ApprovalEvent, 0)
	err := s.db.WithContext(ctx).
		Where("domain = ? AND employee_id = ?", domain, employeeID).
		Order("performed_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
