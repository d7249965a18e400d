package models

import "time"

// Notification is an in-app inbox entry for one user.
type Notification struct {
	NotificationID  uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID          uint       `gorm:"column:user_id;index" json:"user_id"`
	Title           string     `gorm:"column:title;size:255" json:"title"`
	Message         string     `gorm:"column:message" json:"message"`
	Type            string     `gorm:"column:type;size:16" json:"type"` // info|success|warning|error
	RelatedDomain   string     `gorm:"column:related_domain;size:32" json:"related_domain,omitempty"`
	RelatedRecordID *uint      `gorm:"column:related_record_id" json:"related_record_id,omitempty"`
	IsRead          bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt        time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
