package models

import "time"

// Actions recorded in the approval audit trail.
const (
	ActionSubmit       = "submit"
	ActionEdit         = "edit"
	ActionEditApproved = "edit_approved"
	ActionApprove      = "approve"
	ActionReject       = "reject"
	ActionDelete       = "delete"
)

// ApprovalEvent is an append-only history row for a draft transition.
type ApprovalEvent struct {
	ID           uint           `gorm:"primaryKey;column:id" json:"id"`
	Domain       string         `gorm:"column:domain;size:32;index:idx_approval_events_subject" json:"domain"`
	EmployeeID   string         `gorm:"column:employee_id;size:32;index:idx_approval_events_subject" json:"employee_id"`
	DraftID      uint           `gorm:"column:draft_id" json:"draft_id"`
	ApprovedID   *uint          `gorm:"column:approved_id" json:"approved_id,omitempty"`
	Action       string         `gorm:"column:action;size:32" json:"action"`
	PerformedBy  uint           `gorm:"column:performed_by" json:"performed_by"`
	StatusBefore ApprovalStatus `gorm:"column:status_before;size:16" json:"status_before,omitempty"`
	StatusAfter  ApprovalStatus `gorm:"column:status_after;size:16" json:"status_after"`
	Remarks      string         `gorm:"column:remarks" json:"remarks,omitempty"`
	PerformedAt  time.Time      `gorm:"column:performed_at" json:"performed_at"`
}

func (ApprovalEvent) TableName() string {
	return "approval_events"
}
