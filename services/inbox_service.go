package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/models"
)

// InboxService stores in-app notifications. It also acts as a Notifier so
// workflow outcomes land in the owner's inbox.
type InboxService struct {
	db *gorm.DB
}

func NewInboxService(db *gorm.DB) *InboxService {
	if db == nil {
		db = config.DB
	}
	return &InboxService{db: db}
}

// Notify writes an inbox entry for the owner of the record.
func (s *InboxService) Notify(ctx context.Context, n Notification) error {
	if n.OwnerID == 0 {
		return nil
	}

	entry := models.Notification{
		UserID:        n.OwnerID,
		RelatedDomain: n.Domain,
		CreateAt:      n.At,
	}
	if entry.CreateAt.IsZero() {
		entry.CreateAt = time.Now()
	}

	switch n.Action {
	case models.ActionReject:
		entry.Type = "error"
		entry.Title = fmt.Sprintf("%s submission rejected", n.Label)
		entry.Message = fmt.Sprintf("Your %s submission for %s was rejected: %s", n.Label, n.EmployeeID, n.Remarks)
		id := n.DraftID
		entry.RelatedRecordID = &id
	default:
		entry.Type = "success"
		entry.Title = fmt.Sprintf("%s submission approved", n.Label)
		entry.Message = fmt.Sprintf("Your %s submission for %s was approved.", n.Label, n.EmployeeID)
		id := n.ApprovedID
		entry.RelatedRecordID = &id
	}

	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *InboxService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	items := make([]models.Notification, 0)
	if err := q.Order("create_at DESC, notification_id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InboxService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkRead flags one of the user's notifications as read.
func (s *InboxService) MarkRead(ctx context.Context, userID, id uint) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "update_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %d", ErrNotFound, id)
	}
	return nil
}

func (s *InboxService) MarkAllRead(ctx context.Context, userID uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "update_at": now}).Error
}
