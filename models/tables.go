package models

// AllModels lists every table the API owns, in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&Work{},
		&Bank{},
		&EmployeeSequence{},
		&EmployeeDraft{},
		&Employee{},
		&AadharDraft{},
		&Aadhar{},
		&PanDraft{},
		&Pan{},
		&BankDetailDraft{},
		&BankDetail{},
		&ApprovalEvent{},
		&Notification{},
	}
}
