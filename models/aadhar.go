package models

// AadharCard is the national ID card payload.
type AadharCard struct {
	AadharName string `gorm:"column:aadhar_name;size:150" json:"aadhar_name" form:"aadhar_name" validate:"required,max=150"`
	AadharNo   int64  `gorm:"column:aadhar_no" json:"aadhar_no" form:"aadhar_no" validate:"required,gte=100000000000,lte=999999999999"`
}

func (AadharCard) DraftTableName() string    { return "aadhar_drafts" }
func (AadharCard) ApprovedTableName() string { return "aadhars" }
func (AadharCard) FileField() string         { return "aadhar_image" }

type (
	AadharDraft = Draft[AadharCard]
	Aadhar      = Approved[AadharCard]
)
