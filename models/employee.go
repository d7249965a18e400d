package models

// EmployeeProfile holds the personal details of an employee. The employee code
// (GSS001, ...) lives on the record itself as EmployeeID.
type EmployeeProfile struct {
	FirstName   string `gorm:"column:first_name;size:100" json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName    string `gorm:"column:last_name;size:100" json:"last_name" form:"last_name" validate:"required,max=100"`
	Email       string `gorm:"column:email;size:255" json:"email" form:"email" validate:"required,email"`
	Phone       string `gorm:"column:phone;size:15" json:"phone" form:"phone" validate:"required,numeric,min=10,max=15"`
	DateOfBirth string `gorm:"column:date_of_birth;size:10" json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      string `gorm:"column:gender;size:10" json:"gender" form:"gender" validate:"omitempty,oneof=male female other"`
	Address     string `gorm:"column:address" json:"address" form:"address"`
	WorkID      uint   `gorm:"column:work_id" json:"work_id" form:"work_id"`
	JoiningDate string `gorm:"column:joining_date;size:10" json:"joining_date" form:"joining_date" validate:"omitempty,datetime=2006-01-02"`

	Work *Work `gorm:"-" json:"work,omitempty" form:"-" validate:"-"`
}

func (EmployeeProfile) DraftTableName() string    { return "employee_drafts" }
func (EmployeeProfile) ApprovedTableName() string { return "employees" }
func (EmployeeProfile) FileField() string         { return "photo" }

func (p *EmployeeProfile) ResolveReferences(l ReferenceLookup) error {
	p.Work = nil
	if p.WorkID == 0 {
		return nil
	}
	work, err := l.Work(p.WorkID)
	if err != nil {
		return err
	}
	p.Work = work
	return nil
}

type (
	EmployeeDraft = Draft[EmployeeProfile]
	Employee      = Approved[EmployeeProfile]
)

// EmployeeSequence is the counter behind the sequential employee codes.
type EmployeeSequence struct {
	Name  string `gorm:"primaryKey;column:name;size:32"`
	Value int    `gorm:"column:value"`
}

func (EmployeeSequence) TableName() string {
	return "employee_sequences"
}
