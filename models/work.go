package models

import "time"

// Work is a designation within a department, referenced by employee profiles.
type Work struct {
	WorkID      uint       `gorm:"primaryKey;column:work_id" json:"work_id"`
	Designation string     `gorm:"column:designation;size:150" json:"designation"`
	Department  string     `gorm:"column:department;size:150" json:"department"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Work) TableName() string {
	return "works"
}

// Bank is the master list of banks referenced by bank details.
type Bank struct {
	BankID   uint       `gorm:"primaryKey;column:bank_id" json:"bank_id"`
	BankName string     `gorm:"column:bank_name;size:150;uniqueIndex" json:"bank_name"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Bank) TableName() string {
	return "banks"
}
