package models

// BankAccount is the salary account payload.
type BankAccount struct {
	BankID        uint   `gorm:"column:bank_id" json:"bank_id" form:"bank_id" validate:"required"`
	AccountHolder string `gorm:"column:account_holder;size:150" json:"account_holder" form:"account_holder" validate:"required,max=150"`
	AccountNo     string `gorm:"column:account_no;size:20" json:"account_no" form:"account_no" validate:"required,numeric,min=6,max=20"`
	IFSCCode      string `gorm:"column:ifsc_code;size:11" json:"ifsc_code" form:"ifsc_code" validate:"required,ifsc"`
	Branch        string `gorm:"column:branch;size:150" json:"branch" form:"branch"`

	Bank *Bank `gorm:"-" json:"bank,omitempty" form:"-" validate:"-"`
}

func (BankAccount) DraftTableName() string    { return "bank_detail_drafts" }
func (BankAccount) ApprovedTableName() string { return "bank_details" }
func (BankAccount) FileField() string         { return "passbook_image" }

func (p *BankAccount) ResolveReferences(l ReferenceLookup) error {
	p.Bank = nil
	if p.BankID == 0 {
		return nil
	}
	bank, err := l.Bank(p.BankID)
	if err != nil {
		return err
	}
	p.Bank = bank
	return nil
}

type (
	BankDetailDraft = Draft[BankAccount]
	BankDetail      = Approved[BankAccount]
)
