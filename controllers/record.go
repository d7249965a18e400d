package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"employee-records-api/config"
	"employee-records-api/models"
	"employee-records-api/services"
	"employee-records-api/storage"
	"employee-records-api/utils"
)

// RecordController exposes one approval workflow over HTTP.
type RecordController[P models.Payload] struct {
	workflow *services.Workflow[P]
	store    storage.Store
	maxBytes int64
}

func NewRecordController[P models.Payload](w *services.Workflow[P], store storage.Store, maxBytes int64) *RecordController[P] {
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}
	return &RecordController[P]{workflow: w, store: store, maxBytes: maxBytes}
}

// submitMeta carries the non-payload fields of a submission.
type submitMeta struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	UserID     uint   `json:"user_id" form:"user_id"`
}

type rejectRequest struct {
	Remarks string `json:"remarks" form:"remarks"`
}

func (rc *RecordController[P]) singular() string { return rc.workflow.Domain().Name }
func (rc *RecordController[P]) plural() string   { return rc.workflow.Domain().Name + "s" }
func (rc *RecordController[P]) label() string    { return rc.workflow.Domain().Label }

// bind decodes JSON or form bodies onto dst. Fields missing from the request
// keep their current value.
func bind(c *gin.Context, dst any) error {
	if c.ContentType() == binding.MIMEJSON {
		return c.ShouldBindBodyWith(dst, binding.JSON)
	}
	return c.ShouldBindWith(dst, binding.Form)
}

// saveUpload stores the optional document image and returns its path, or ""
// when the request carries no file.
func (rc *RecordController[P]) saveUpload(c *gin.Context) (string, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return "", nil
	}
	var p P
	file, err := c.FormFile(p.FileField())
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrValidation, err)
	}

	if file.Size > rc.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", services.ErrValidation, rc.maxBytes)
	}
	if !storage.AllowedExtension(file.Filename) {
		return "", fmt.Errorf("%w: file type not allowed", services.ErrValidation)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	folder := fmt.Sprintf("%s/%d", rc.singular(), c.GetUint("userID"))
	return rc.store.Save(c.Request.Context(), folder, file.Filename, f, file.Size)
}

// discardUpload removes a stored file whose request was refused.
func (rc *RecordController[P]) discardUpload(c *gin.Context, filePath string) {
	if filePath == "" {
		return
	}
	if err := rc.store.Delete(context.WithoutCancel(c.Request.Context()), filePath); err != nil {
		config.Logger.Warn().Err(err).Str("path", filePath).Msg("failed to remove upload of a refused request")
	}
}

func (rc *RecordController[P]) patchFrom(c *gin.Context) services.Patch[P] {
	return func(p *P) error {
		return bind(c, p)
	}
}

// Create handles POST /create<domain>
func (rc *RecordController[P]) Create(c *gin.Context) {
	var payload P
	if err := bind(c, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + rc.label() + " data", "error": err.Error()})
		return
	}
	var meta submitMeta
	if err := bind(c, &meta); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + rc.label() + " data", "error": err.Error()})
		return
	}

	filePath, err := rc.saveUpload(c)
	if err != nil {
		respondError(c, "Failed to upload file", err)
		return
	}

	draft, err := rc.workflow.Submit(c.Request.Context(), actorFrom(c), services.Submission[P]{
		EmployeeID: meta.EmployeeID,
		OwnerID:    meta.UserID,
		Details:    payload,
		FilePath:   filePath,
	})
	if err != nil {
		rc.discardUpload(c, filePath)
		respondError(c, "Failed to submit "+rc.label(), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     rc.label() + " submitted for approval",
		rc.singular(): draft,
	})
}

// Approve handles POST /approv<domain>/:id (admin only)
func (rc *RecordController[P]) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	approved, err := rc.workflow.Approve(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, "Failed to approve "+rc.label(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     rc.label() + " approved successfully",
		rc.singular(): approved,
	})
}

// Reject handles POST /reject<domain>/:id (admin only)
func (rc *RecordController[P]) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req rejectRequest
	if err := bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "error": err.Error()})
		return
	}

	draft, err := rc.workflow.Reject(c.Request.Context(), actorFrom(c), id, req.Remarks)
	if err != nil {
		respondError(c, "Failed to reject "+rc.label(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     rc.label() + " rejected",
		rc.singular(): draft,
	})
}

// Edit handles PUT /edit<domain>/:id on a pending or rejected draft
func (rc *RecordController[P]) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	filePath, err := rc.saveUpload(c)
	if err != nil {
		respondError(c, "Failed to upload file", err)
		return
	}

	draft, err := rc.workflow.EditPending(c.Request.Context(), actorFrom(c), id, rc.patchFrom(c), filePath)
	if err != nil {
		rc.discardUpload(c, filePath)
		respondError(c, "Failed to update "+rc.label(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     rc.label() + " updated and sent for approval",
		rc.singular(): draft,
	})
}

// EditApproved handles PUT /editapprove<domain>/:id on an approved record
func (rc *RecordController[P]) EditApproved(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	filePath, err := rc.saveUpload(c)
	if err != nil {
		respondError(c, "Failed to upload file", err)
		return
	}

	draft, err := rc.workflow.EditApproved(c.Request.Context(), actorFrom(c), id, rc.patchFrom(c), filePath)
	if err != nil {
		rc.discardUpload(c, filePath)
		respondError(c, "Failed to update approved "+rc.label(), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Changes to " + rc.label() + " sent for approval",
		rc.singular(): draft,
	})
}

// Delete handles DELETE /delete<domain>/:id
func (rc *RecordController[P]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := rc.workflow.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, "Failed to delete "+rc.label(), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": rc.label() + " deleted successfully",
	})
}

func (rc *RecordController[P]) listByStatus(c *gin.Context, status models.ApprovalStatus) {
	drafts, err := rc.workflow.ListDrafts(c.Request.Context(), services.DraftFilter{Status: status})
	if err != nil {
		respondError(c, "Failed to fetch "+rc.label()+" records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("%s %s records fetched", status, rc.label()),
		rc.plural(): drafts,
	})
}

// ListPending handles GET /fetchallpending<domain>
func (rc *RecordController[P]) ListPending(c *gin.Context) {
	rc.listByStatus(c, models.StatusPending)
}

// ListRejected handles GET /fetchallrejected<domain>
func (rc *RecordController[P]) ListRejected(c *gin.Context) {
	rc.listByStatus(c, models.StatusRejected)
}

// ListDrafts handles GET /fetchall<domain>?status=
func (rc *RecordController[P]) ListDrafts(c *gin.Context) {
	var filter services.DraftFilter
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseApprovalStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status", "error": err.Error()})
			return
		}
		filter.Status = status
	}
	filter.EmployeeID = c.Query("employee_id")

	drafts, err := rc.workflow.ListDrafts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to fetch "+rc.label()+" records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   rc.label() + " records fetched",
		rc.plural(): drafts,
	})
}

// ListApproved handles GET /fetchallapproved<domain>
func (rc *RecordController[P]) ListApproved(c *gin.Context) {
	items, err := rc.workflow.ListApproved(c.Request.Context(), services.ApprovedFilter{})
	if err != nil {
		respondError(c, "Failed to fetch approved "+rc.label()+" records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Approved " + rc.label() + " records fetched",
		rc.plural(): items,
	})
}

// Get handles GET /fetch<domain>/:id
func (rc *RecordController[P]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	draft, err := rc.workflow.GetDraft(c.Request.Context(), id)
	if err != nil {
		respondError(c, rc.label()+" not found", err)
		return
	}
	actor := actorFrom(c)
	if !actor.IsAdmin() && draft.UserID != actor.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     rc.label() + " fetched",
		rc.singular(): draft,
	})
}

// GetApproved handles GET /fetchapproved<domain>/:id
func (rc *RecordController[P]) GetApproved(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	approved, err := rc.workflow.GetApproved(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Approved "+rc.label()+" not found", err)
		return
	}
	actor := actorFrom(c)
	if !actor.IsAdmin() && approved.UserID != actor.UserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Approved " + rc.label() + " fetched",
		rc.singular(): approved,
	})
}

// ListByEmployee handles GET /fetch<domain>byemployee/:employee_id
func (rc *RecordController[P]) ListByEmployee(c *gin.Context) {
	employeeID := utils.NormalizeEmployeeCode(c.Param("employee_id"))
	actor := actorFrom(c)

	draftFilter := services.DraftFilter{EmployeeID: employeeID}
	approvedFilter := services.ApprovedFilter{EmployeeID: employeeID}
	if !actor.IsAdmin() {
		draftFilter.UserID = actor.UserID
		approvedFilter.UserID = actor.UserID
	}

	rc.respondDraftsAndApproved(c, draftFilter, approvedFilter)
}

// ListMine handles GET /fetchmy<domain>
func (rc *RecordController[P]) ListMine(c *gin.Context) {
	userID := c.GetUint("userID")
	rc.respondDraftsAndApproved(c,
		services.DraftFilter{UserID: userID},
		services.ApprovedFilter{UserID: userID},
	)
}

func (rc *RecordController[P]) respondDraftsAndApproved(c *gin.Context, df services.DraftFilter, af services.ApprovedFilter) {
	drafts, err := rc.workflow.ListDrafts(c.Request.Context(), df)
	if err != nil {
		respondError(c, "Failed to fetch "+rc.label()+" records", err)
		return
	}
	approved, err := rc.workflow.ListApproved(c.Request.Context(), af)
	if err != nil {
		respondError(c, "Failed to fetch approved "+rc.label()+" records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   rc.label() + " records fetched",
		rc.plural(): drafts,
		"approved":  approved,
	})
}
