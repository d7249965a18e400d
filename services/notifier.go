package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/events"
	"employee-records-api/models"
)

// Notification describes a finished approve or reject.
type Notification struct {
	Domain     string    `json:"domain"`
	Label      string    `json:"-"`
	Action     string    `json:"action"`
	DraftID    uint      `json:"draft_id"`
	ApprovedID uint      `json:"approved_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	OwnerID    uint      `json:"user_id"`
	Remarks    string    `json:"remarks,omitempty"`
	At         time.Time `json:"at"`
}

// notifyTimeout bounds a notification delivered after the request's own
// context may already be gone.
const notifyTimeout = 15 * time.Second

// detachedContext keeps the request values but drops its cancellation.
func detachedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
}

// Notifier is told about workflow outcomes after they are committed.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) error { return nil }

// MultiNotifier fans a notification out and joins the errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MailNotifier emails the owner of the record.
type MailNotifier struct {
	db   *gorm.DB
	send func(to []string, subject, html string) error
}

func NewMailNotifier(db *gorm.DB) *MailNotifier {
	if db == nil {
		db = config.DB
	}
	return &MailNotifier{db: db, send: config.SendMail}
}

func (m *MailNotifier) Notify(ctx context.Context, n Notification) error {
	var user models.User
	if err := m.db.WithContext(ctx).Select("user_id", "name", "email").First(&user, n.OwnerID).Error; err != nil {
		return fmt.Errorf("failed to load owner %d: %w", n.OwnerID, err)
	}
	if user.Email == "" {
		return nil
	}

	subject, body, err := mailContent(n, user.Name)
	if err != nil {
		return err
	}
	return m.send([]string{user.Email}, subject, body)
}

func mailContent(n Notification, name string) (string, string, error) {
	fields := []mailField{
		{Label: "Record", Value: n.Label},
		{Label: "Employee code", Value: n.EmployeeID},
		{Label: "Date", Value: n.At.Format("02 Jan 2006 15:04")},
	}

	var subject, paragraph string
	switch n.Action {
	case models.ActionReject:
		subject = fmt.Sprintf("%s submission rejected", n.Label)
		paragraph = fmt.Sprintf("Your %s submission was rejected. Please correct it and submit it again.", n.Label)
		fields = append(fields, mailField{Label: "Remarks", Value: n.Remarks})
	default:
		subject = fmt.Sprintf("%s submission approved", n.Label)
		paragraph = fmt.Sprintf("Your %s submission was approved and is now the record on file.", n.Label)
	}

	body, err := renderMail(subject, name, []string{paragraph}, fields)
	return subject, body, err
}

// EventNotifier publishes the notification as records.<domain>.<action>.
type EventNotifier struct {
	publisher events.Publisher
}

func NewEventNotifier(p events.Publisher) *EventNotifier {
	return &EventNotifier{publisher: p}
}

func (e *EventNotifier) Notify(ctx context.Context, n Notification) error {
	return e.publisher.Publish(ctx, events.RoutingKey(n.Domain, n.Action), n)
}
