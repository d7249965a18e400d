package models

// PanCard is the tax ID card payload.
type PanCard struct {
	PanName string `gorm:"column:pan_name;size:150" json:"pan_name" form:"pan_name" validate:"required,max=150"`
	PanNo   string `gorm:"column:pan_no;size:10" json:"pan_no" form:"pan_no" validate:"required,pan_no"`
}

func (PanCard) DraftTableName() string    { return "pan_drafts" }
func (PanCard) ApprovedTableName() string { return "pans" }
func (PanCard) FileField() string         { return "pan_image" }

type (
	PanDraft = Draft[PanCard]
	Pan      = Approved[PanCard]
)
