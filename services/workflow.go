package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"employee-records-api/config"
	"employee-records-api/models"
	"employee-records-api/utils"
)

// Domain describes one record family run through the approval workflow.
type Domain struct {
	// Name is the route and audit key, e.g. "aadhar".
	Name string
	// Label is used in user facing messages, e.g. "Aadhar".
	Label string
	// AssignsSubject marks the family that creates subjects (employee codes).
	AssignsSubject bool
	// UniquePending refuses a second Pending draft for the same subject.
	UniquePending bool
	// RequireSubject rejects submissions for employee codes that do not exist.
	RequireSubject bool
}

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Submission is the input of Workflow.Submit.
type Submission[P models.Payload] struct {
	EmployeeID string
	// OwnerID lets an admin file a submission on behalf of another user.
	OwnerID  uint
	Details  P
	FilePath string
}

// Patch overwrites the fields it carries on an existing payload.
type Patch[P models.Payload] func(*P) error

// DraftFilter narrows ListDrafts. Zero values are ignored.
type DraftFilter struct {
	Status     models.ApprovalStatus
	EmployeeID string
	UserID     uint
}

// ApprovedFilter narrows ListApproved. Zero values are ignored.
type ApprovedFilter struct {
	EmployeeID string
	UserID     uint
}

// Workflow runs the draft -> approved pipeline for one payload type.
type Workflow[P models.Payload] struct {
	db         *gorm.DB
	domain     Domain
	validate   *validator.Validate
	notifier   Notifier
	codePrefix string
	now        func() time.Time
	log        zerolog.Logger
}

// WorkflowOption customizes a Workflow.
type WorkflowOption func(*workflowOptions)

type workflowOptions struct {
	notifier   Notifier
	codePrefix string
	now        func() time.Time
}

func WithNotifier(n Notifier) WorkflowOption {
	return func(o *workflowOptions) { o.notifier = n }
}

func WithEmployeeCodePrefix(prefix string) WorkflowOption {
	return func(o *workflowOptions) { o.codePrefix = prefix }
}

func WithClock(now func() time.Time) WorkflowOption {
	return func(o *workflowOptions) { o.now = now }
}

func NewWorkflow[P models.Payload](db *gorm.DB, domain Domain, opts ...WorkflowOption) *Workflow[P] {
	if db == nil {
		db = config.DB
	}
	o := workflowOptions{
		notifier:   NopNotifier{},
		codePrefix: DefaultEmployeeCodePrefix,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Workflow[P]{
		db:         db,
		domain:     domain,
		validate:   NewValidator(),
		notifier:   o.notifier,
		codePrefix: o.codePrefix,
		now:        o.now,
		log:        config.Logger.With().Str("domain", domain.Name).Logger(),
	}
}

func (w *Workflow[P]) Domain() Domain {
	return w.domain
}

func (w *Workflow[P]) validatePayload(p P) error {
	if err := w.validate.Struct(p); err != nil {
		return describeValidation(err)
	}
	return nil
}

// Submit stores a new Pending draft.
func (w *Workflow[P]) Submit(ctx context.Context, actor Actor, sub Submission[P]) (*models.Draft[P], error) {
	if err := w.validatePayload(sub.Details); err != nil {
		return nil, err
	}

	owner := actor.UserID
	if sub.OwnerID != 0 && actor.IsAdmin() {
		owner = sub.OwnerID
	}

	draft := models.Draft[P]{
		UserID:         owner,
		Details:        sub.Details,
		FilePath:       sub.FilePath,
		Status:         models.StatusPending,
		LinkedApproved: models.Links{},
	}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subject, err := w.resolveSubject(tx, actor, owner, utils.NormalizeEmployeeCode(sub.EmployeeID))
		if err != nil {
			return err
		}
		draft.EmployeeID = subject
		if err := checkReferences(tx, &draft.Details); err != nil {
			return err
		}

		if w.domain.UniquePending {
			var pending int64
			if err := tx.Model(&models.Draft[P]{}).
				Where("employee_id = ? AND status = ?", subject, models.StatusPending).
				Count(&pending).Error; err != nil {
				return err
			}
			if pending > 0 {
				return validationError("a pending %s submission already exists for %s", w.domain.Label, subject)
			}
		}

		if err := tx.Create(&draft).Error; err != nil {
			return err
		}
		return w.recordEvent(tx, actor, &draft, nil, models.ActionSubmit, "", "")
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().Uint("draft_id", draft.ID).Str("employee_id", draft.EmployeeID).Msg("submission created")
	return &draft, nil
}

// resolveSubject returns the employee code a new draft belongs to.
func (w *Workflow[P]) resolveSubject(tx *gorm.DB, actor Actor, owner uint, requested string) (string, error) {
	var ownCode string
	if !actor.IsAdmin() {
		var user models.User
		if err := tx.Select("user_id", "employee_id").First(&user, actor.UserID).Error; err != nil {
			return "", notFound(err, "user", actor.UserID)
		}
		if user.EmployeeID != nil {
			ownCode = *user.EmployeeID
		}
		if requested != "" && ownCode != "" && requested != ownCode {
			return "", fmt.Errorf("%w: cannot submit for employee %s", ErrForbidden, requested)
		}
	}

	subject := requested
	if subject == "" {
		subject = ownCode
	}

	if subject == "" {
		if !w.domain.AssignsSubject {
			return "", validationError("employee_id is required")
		}
		code, err := NextEmployeeCode(tx, w.codePrefix)
		if err != nil {
			return "", err
		}
		if owner != 0 {
			if err := bindEmployeeCode(tx, owner, code); err != nil {
				return "", err
			}
		}
		return code, nil
	}

	if w.domain.RequireSubject {
		exists, err := SubjectExists(tx, subject)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("%w: employee %s", ErrNotFound, subject)
		}
	}
	return subject, nil
}

// bindEmployeeCode links a freshly issued code to the owner's account. Admin
// accounts and accounts that already carry a code are left alone, as is a code
// some other account was created with.
func bindEmployeeCode(tx *gorm.DB, owner uint, code string) error {
	var taken int64
	if err := tx.Model(&models.User{}).Where("employee_id = ?", code).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return nil
	}
	return tx.Model(&models.User{}).
		Where("user_id = ? AND employee_id IS NULL AND role <> ?", owner, models.RoleAdmin).
		Update("employee_id", code).Error
}

// Approve merges a Pending draft into the subject's approved record and
// removes the draft.
func (w *Workflow[P]) Approve(ctx context.Context, actor Actor, draftID uint) (*models.Approved[P], error) {
	var (
		draft   models.Draft[P]
		target  models.Approved[P]
		created bool
	)

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&draft, draftID).Error; err != nil {
			return notFound(err, w.domain.Label+" draft", draftID)
		}
		if !models.CanTransition(draft.Status, models.StatusApproved) {
			return fmt.Errorf("%w: %s draft %d is %s", ErrInvalidState, w.domain.Label, draft.ID, draft.Status)
		}

		found, err := w.loadTarget(tx, &draft, &target)
		if err != nil {
			return err
		}
		created = !found

		if found {
			target.Details = draft.Details
			target.FilePath = draft.FilePath
			target.LinkedDrafts = models.WithoutLink(target.LinkedDrafts, draft.ID)
		} else {
			target = models.Approved[P]{
				EmployeeID:   draft.EmployeeID,
				UserID:       draft.UserID,
				Details:      draft.Details,
				FilePath:     draft.FilePath,
				LinkedDrafts: models.Links{},
			}
		}
		target.Status = models.StatusApproved

		if err := tx.Save(&target).Error; err != nil {
			return err
		}
		if err := attachReferences(newReferenceCache(tx), &target.Details); err != nil {
			return err
		}

		if !models.HasLink(draft.LinkedApproved, target.ID) {
			draft.LinkedApproved = append(draft.LinkedApproved, models.Link{ID: target.ID, Timestamp: w.now()})
		}
		before := draft.Status
		draft.Status = models.StatusApproved
		if err := tx.Save(&draft).Error; err != nil {
			return err
		}
		if err := w.recordEvent(tx, actor, &draft, &target.ID, models.ActionApprove, before, ""); err != nil {
			return err
		}
		return tx.Delete(&draft).Error
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().Uint("draft_id", draft.ID).Uint("approved_id", target.ID).
		Str("employee_id", target.EmployeeID).Bool("created", created).Msg("submission approved")
	w.notify(ctx, models.ActionApprove, draft.ID, target.ID, target.EmployeeID, target.UserID, "")
	return &target, nil
}

// loadTarget finds the approved row a draft merges into: the first linked
// record, or else the subject's existing record. It reports false when a new
// row has to be created.
func (w *Workflow[P]) loadTarget(tx *gorm.DB, draft *models.Draft[P], target *models.Approved[P]) (bool, error) {
	if len(draft.LinkedApproved) > 0 {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(target, draft.LinkedApproved[0].ID).Error
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		w.log.Warn().Uint("draft_id", draft.ID).Uint("approved_id", draft.LinkedApproved[0].ID).
			Msg("linked approved record is gone, falling back to subject lookup")
	}

	*target = models.Approved[P]{}
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", draft.EmployeeID).First(target).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// Reject flags a Pending draft with the admin's remarks and keeps it.
func (w *Workflow[P]) Reject(ctx context.Context, actor Actor, draftID uint, remarks string) (*models.Draft[P], error) {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return nil, validationError("remarks are required to reject a submission")
	}

	var draft models.Draft[P]
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&draft, draftID).Error; err != nil {
			return notFound(err, w.domain.Label+" draft", draftID)
		}
		if !models.CanTransition(draft.Status, models.StatusRejected) {
			return fmt.Errorf("%w: %s draft %d is %s", ErrInvalidState, w.domain.Label, draft.ID, draft.Status)
		}

		before := draft.Status
		draft.Status = models.StatusRejected
		draft.Remarks = remarks
		if err := tx.Save(&draft).Error; err != nil {
			return err
		}
		return w.recordEvent(tx, actor, &draft, nil, models.ActionReject, before, remarks)
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().Uint("draft_id", draft.ID).Str("employee_id", draft.EmployeeID).Msg("submission rejected")
	w.notify(ctx, models.ActionReject, draft.ID, 0, draft.EmployeeID, draft.UserID, remarks)
	return &draft, nil
}

// EditPending applies patch to a Pending or Rejected draft and puts it back
// in the queue. Remarks are kept.
func (w *Workflow[P]) EditPending(ctx context.Context, actor Actor, draftID uint, patch Patch[P], filePath string) (*models.Draft[P], error) {
	var draft models.Draft[P]
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&draft, draftID).Error; err != nil {
			return notFound(err, w.domain.Label+" draft", draftID)
		}
		if !actor.IsAdmin() && draft.UserID != actor.UserID {
			return fmt.Errorf("%w: %s draft %d belongs to another user", ErrForbidden, w.domain.Label, draft.ID)
		}
		if !models.CanTransition(draft.Status, models.StatusPending) {
			return fmt.Errorf("%w: %s draft %d is %s", ErrInvalidState, w.domain.Label, draft.ID, draft.Status)
		}

		if patch != nil {
			if err := patch(&draft.Details); err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
		if err := w.validatePayload(draft.Details); err != nil {
			return err
		}
		if err := checkReferences(tx, &draft.Details); err != nil {
			return err
		}
		if filePath != "" {
			draft.FilePath = filePath
		}

		before := draft.Status
		draft.Status = models.StatusPending
		if err := tx.Save(&draft).Error; err != nil {
			return err
		}
		return w.recordEvent(tx, actor, &draft, nil, models.ActionEdit, before, "")
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// EditApproved opens a new Pending draft against an approved record. The
// approved payload stays untouched until that draft is approved.
func (w *Workflow[P]) EditApproved(ctx context.Context, actor Actor, approvedID uint, patch Patch[P], filePath string) (*models.Draft[P], error) {
	var draft models.Draft[P]
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var approved models.Approved[P]
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&approved, approvedID).Error; err != nil {
			return notFound(err, "approved "+w.domain.Label, approvedID)
		}
		if !actor.IsAdmin() && approved.UserID != actor.UserID {
			return fmt.Errorf("%w: approved %s %d belongs to another user", ErrForbidden, w.domain.Label, approved.ID)
		}

		now := w.now()
		draft = models.Draft[P]{
			EmployeeID:     approved.EmployeeID,
			UserID:         approved.UserID,
			Details:        approved.Details,
			FilePath:       approved.FilePath,
			Status:         models.StatusPending,
			LinkedApproved: models.Links{{ID: approved.ID, Timestamp: now}},
		}
		if patch != nil {
			if err := patch(&draft.Details); err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
		if err := w.validatePayload(draft.Details); err != nil {
			return err
		}
		if err := checkReferences(tx, &draft.Details); err != nil {
			return err
		}
		if filePath != "" {
			draft.FilePath = filePath
		}

		if err := tx.Create(&draft).Error; err != nil {
			return err
		}

		approved.LinkedDrafts = append(approved.LinkedDrafts, models.Link{ID: draft.ID, Timestamp: now})
		if err := tx.Model(&approved).Update("linked_drafts", approved.LinkedDrafts).Error; err != nil {
			return err
		}
		return w.recordEvent(tx, actor, &draft, &approved.ID, models.ActionEditApproved, "", "")
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().Uint("draft_id", draft.ID).Uint("approved_id", draft.LinkedApproved[0].ID).Msg("edit of approved record submitted")
	return &draft, nil
}

// Delete removes a Pending draft and any back reference to it.
func (w *Workflow[P]) Delete(ctx context.Context, actor Actor, draftID uint) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var draft models.Draft[P]
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&draft, draftID).Error; err != nil {
			return notFound(err, w.domain.Label+" draft", draftID)
		}
		if !actor.IsAdmin() && draft.UserID != actor.UserID {
			return fmt.Errorf("%w: %s draft %d belongs to another user", ErrForbidden, w.domain.Label, draft.ID)
		}
		if draft.Status != models.StatusPending {
			return fmt.Errorf("%w: only pending submissions can be deleted, %s draft %d is %s",
				ErrInvalidState, w.domain.Label, draft.ID, draft.Status)
		}

		for _, link := range draft.LinkedApproved {
			var approved models.Approved[P]
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&approved, link.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&approved).
				Update("linked_drafts", models.WithoutLink(approved.LinkedDrafts, draft.ID)).Error; err != nil {
				return err
			}
		}

		if err := w.recordEvent(tx, actor, &draft, nil, models.ActionDelete, draft.Status, ""); err != nil {
			return err
		}
		return tx.Delete(&draft).Error
	})
}

// GetDraft returns one draft with its owner and lookup rows.
func (w *Workflow[P]) GetDraft(ctx context.Context, id uint) (*models.Draft[P], error) {
	var draft models.Draft[P]
	db := w.db.WithContext(ctx)
	if err := db.Preload("Owner").First(&draft, id).Error; err != nil {
		return nil, notFound(err, w.domain.Label+" draft", id)
	}
	if err := attachReferences(newReferenceCache(db), &draft.Details); err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetApproved returns one approved record with its owner.
func (w *Workflow[P]) GetApproved(ctx context.Context, id uint) (*models.Approved[P], error) {
	var approved models.Approved[P]
	db := w.db.WithContext(ctx)
	if err := db.Preload("Owner").First(&approved, id).Error; err != nil {
		return nil, notFound(err, "approved "+w.domain.Label, id)
	}
	if err := attachReferences(newReferenceCache(db), &approved.Details); err != nil {
		return nil, err
	}
	return &approved, nil
}

// ApprovedForSubject returns the subject's approved record, if any.
func (w *Workflow[P]) ApprovedForSubject(ctx context.Context, employeeID string) (*models.Approved[P], error) {
	var approved models.Approved[P]
	db := w.db.WithContext(ctx)
	if err := db.Preload("Owner").
		Where("employee_id = ?", employeeID).First(&approved).Error; err != nil {
		return nil, notFound(err, "approved "+w.domain.Label+" for employee", employeeID)
	}
	if err := attachReferences(newReferenceCache(db), &approved.Details); err != nil {
		return nil, err
	}
	return &approved, nil
}

func (w *Workflow[P]) ListDrafts(ctx context.Context, f DraftFilter) ([]models.Draft[P], error) {
	q := w.db.WithContext(ctx).Model(&models.Draft[P]{}).Preload("Owner")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	drafts := make([]models.Draft[P], 0)
	if err := q.Order("created_at DESC, id DESC").Find(&drafts).Error; err != nil {
		return nil, err
	}
	cache := newReferenceCache(w.db.WithContext(ctx))
	for i := range drafts {
		if err := attachReferences(cache, &drafts[i].Details); err != nil {
			return nil, err
		}
	}
	return drafts, nil
}

func (w *Workflow[P]) ListApproved(ctx context.Context, f ApprovedFilter) ([]models.Approved[P], error) {
	q := w.db.WithContext(ctx).Model(&models.Approved[P]{}).Preload("Owner")
	if f.EmployeeID != "" {
		q = q.Where("employee_id = ?", f.EmployeeID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}

	items := make([]models.Approved[P], 0)
	if err := q.Order("employee_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	cache := newReferenceCache(w.db.WithContext(ctx))
	for i := range items {
		if err := attachReferences(cache, &items[i].Details); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (w *Workflow[P]) recordEvent(tx *gorm.DB, actor Actor, draft *models.Draft[P], approvedID *uint,
	action string, before models.ApprovalStatus, remarks string) error {
	event := models.ApprovalEvent{
		Domain:       w.domain.Name,
		EmployeeID:   draft.EmployeeID,
		DraftID:      draft.ID,
		ApprovedID:   approvedID,
		Action:       action,
		PerformedBy:  actor.UserID,
		StatusBefore: before,
		StatusAfter:  draft.Status,
		Remarks:      remarks,
		PerformedAt:  w.now(),
	}
	if action == models.ActionDelete {
		event.StatusAfter = ""
	}
	return tx.Create(&event).Error
}

func (w *Workflow[P]) notify(ctx context.Context, action string, draftID, approvedID uint, employeeID string, ownerID uint, remarks string) {
	n := Notification{
		Domain:     w.domain.Name,
		Label:      w.domain.Label,
		Action:     action,
		DraftID:    draftID,
		ApprovedID: approvedID,
		EmployeeID: employeeID,
		OwnerID:    ownerID,
		Remarks:    remarks,
		At:         w.now(),
	}
	nctx, cancel := detachedContext(ctx)
	defer cancel()
	if err := w.notifier.Notify(nctx, n); err != nil {
		w.log.Warn().Err(err).Str("action", action).Uint("draft_id", draftID).Msg("notification failed")
	}
}
