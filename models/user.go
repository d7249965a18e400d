package models

import (
	"time"
)

// Role names accepted by the route allow-lists.
const (
	RoleAdmin          = "admin"
	RoleEmployee       = "employee"
	RoleNormalEmployee = "normalemployee"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleNormalEmployee:
		return true
	}
	return false
}

type User struct {
	UserID     uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name       string     `gorm:"column:name;size:150" json:"name"`
	Email      string     `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Password   string     `gorm:"column:password" json:"-"`
	Role       string     `gorm:"column:role;size:32" json:"role"`
	EmployeeID *string    `gorm:"column:employee_id;size:32;uniqueIndex" json:"employee_id,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
