package models

import (
	"encoding/json"
	"time"
)

// Payload is the domain specific part of a record. Implementations are plain
// structs whose fields are embedded into both the draft and the approved table.
type Payload interface {
	DraftTableName() string
	ApprovedTableName() string
	// FileField is the JSON/form key under which the uploaded file path is exposed.
	FileField() string
}

// ReferenceLookup resolves the lookup rows a payload points at.
type ReferenceLookup interface {
	Work(id uint) (*Work, error)
	Bank(id uint) (*Bank, error)
}

// Referencing payloads carry ids of lookup rows that are returned alongside
// the record (the work of an employee, the bank of an account).
type Referencing interface {
	ResolveReferences(l ReferenceLookup) error
}

// Draft is a submission waiting for (or refused) admin approval.
type Draft[P Payload] struct {
	ID             uint           `gorm:"primaryKey;column:id" json:"id"`
	EmployeeID     string         `gorm:"column:employee_id;size:32;index" json:"employee_id"`
	UserID         uint           `gorm:"column:user_id;index" json:"user_id"`
	Details        P              `gorm:"embedded" json:"-"`
	FilePath       string         `gorm:"column:file_path" json:"-"`
	Status         ApprovalStatus `gorm:"column:status;size:16;index;default:Pending" json:"status"`
	Remarks        string         `gorm:"column:remarks" json:"remarks,omitempty"`
	LinkedApproved Links          `gorm:"column:linked_approved" json:"linked_approved"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"updated_at"`

	Owner *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Draft[P]) TableName() string {
	var p P
	return p.DraftTableName()
}

// Approved is the single current approved record of a subject.
type Approved[P Payload] struct {
	ID           uint           `gorm:"primaryKey;column:id" json:"id"`
	EmployeeID   string         `gorm:"column:employee_id;size:32;uniqueIndex" json:"employee_id"`
	UserID       uint           `gorm:"column:user_id;index" json:"user_id"`
	Details      P              `gorm:"embedded" json:"-"`
	FilePath     string         `gorm:"column:file_path" json:"-"`
	Status       ApprovalStatus `gorm:"column:status;size:16;default:Approved" json:"status"`
	LinkedDrafts Links          `gorm:"column:linked_drafts" json:"linked_drafts"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`

	Owner *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Approved[P]) TableName() string {
	var p P
	return p.ApprovedTableName()
}

// MarshalJSON flattens the payload fields next to the record metadata so the
// wire shape matches the per-domain documents.
func (d Draft[P]) MarshalJSON() ([]byte, error) {
	type plain Draft[P]
	return flattenRecord(plain(d), d.Details, d.FilePath)
}

func (a Approved[P]) MarshalJSON() ([]byte, error) {
	type plain Approved[P]
	return flattenRecord(plain(a), a.Details, a.FilePath)
}

func flattenRecord[P Payload](meta any, details P, filePath string) ([]byte, error) {
	out := map[string]json.RawMessage{}

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	raw, err = json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	var metaFields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &metaFields); err != nil {
		return nil, err
	}
	for k, v := range metaFields {
		out[k] = v
	}

	if field := details.FileField(); field != "" {
		path, _ := json.Marshal(filePath)
		out[field] = path
	}
	return json.Marshal(out)
}
