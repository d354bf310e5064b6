package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/atlas/portal/internal/errors"
	"github.com/stwalsh4118/atlas/portal/internal/middleware"
	"github.com/stwalsh4118/atlas/portal/internal/models"
	"github.com/stwalsh4118/atlas/portal/internal/services"
	"github.com/stwalsh4118/atlas/portal/internal/wizard"
)

const (
	// maxAttachmentsPerRequest caps how many files one upload may add.
	maxAttachmentsPerRequest = 20
	// defaultMaxUploadBytes caps the whole multipart body of one upload.
	defaultMaxUploadBytes int64 = 32 << 20
)

// WizardHandler exposes transfer request wizards as sessions.
type WizardHandler struct {
	store          *wizard.Store
	loader         *services.Loader
	submitter      wizard.Submitter
	maxUploadBytes int64
}

// NewWizardHandler creates a new WizardHandler instance.
func NewWizardHandler(store *wizard.Store, loader *services.Loader, submitter wizard.Submitter) *WizardHandler {
	return &WizardHandler{
		store:          store,
		loader:         loader,
		submitter:      submitter,
		maxUploadBytes: defaultMaxUploadBytes,
	}
}

// CreateRequest is the body for starting a transfer request.
type CreateRequest struct {
	ParcelID string `json:"parcel_id" binding:"required,max=64"`
}

// WizardResponse is a wizard snapshot plus its session id.
type WizardResponse struct {
	SessionID string `json:"session_id"`
	// PropertyNotice is set when the property panel came from sample data.
	PropertyNotice string `json:"property_notice,omitempty"`
	wizard.View
}

// Create handles POST /api/v1/transfer-requests.
// The property panel is loaded once here; registry failures fall back to
// sample data so the wizard can always be opened.
func (h *WizardHandler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := asValidationErrors(err); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	panel := services.LoadPropertyPanel(c.Request.Context(), h.loader, strings.TrimSpace(req.ParcelID))
	sessionID, w := h.store.Create(*panel.Value)

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Transfer request started", map[string]interface{}{
			"session_id":  sessionID,
			"parcel_id":   panel.Value.ParcelID,
			"panel_state": panel.State,
		})
	}

	c.JSON(http.StatusCreated, WizardResponse{
		SessionID:      sessionID,
		PropertyNotice: panel.Notice,
		View:           w.Snapshot(),
	})
}

// Get handles GET /api/v1/transfer-requests/:session.
func (h *WizardHandler) Get(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, w)
}

// Update handles PATCH /api/v1/transfer-requests/:session.
// The body is a partial draft; unknown keys are rejected before anything is
// applied.
func (h *WizardHandler) Update(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Could not read request body", nil)
		return
	}

	var patch wizard.Patch
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		apierrors.BadRequest(c, "Invalid draft update", map[string]interface{}{
			"reason": err.Error(),
		})
		return
	}

	if err := w.Update(patch); err != nil {
		h.writeError(c, w, err)
		return
	}
	h.respond(c, w)
}

// Attach handles POST /api/v1/transfer-requests/:session/documents.
// Only file metadata is recorded; contents are not stored.
func (h *WizardHandler) Attach(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}

	if c.Request.ContentLength > h.maxUploadBytes {
		apierrors.PayloadTooLarge(c, "Upload is too large", h.maxUploadBytes)
		return
	}
	// Chunked bodies carry no length, so the reader enforces the cap too.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.PayloadTooLarge(c, "Upload is too large", h.maxUploadBytes)
			return
		}
		apierrors.BadRequest(c, "Expected a multipart form with files", nil)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		apierrors.BadRequest(c, "No files provided", map[string]interface{}{
			"field": "files",
		})
		return
	}
	if len(files) > maxAttachmentsPerRequest {
		apierrors.BadRequest(c, "Too many files in one upload", map[string]interface{}{
			"max": maxAttachmentsPerRequest,
		})
		return
	}

	attachments := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		attachments = append(attachments, models.Attachment{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		})
	}

	if err := w.Attach(attachments...); err != nil {
		h.writeError(c, w, err)
		return
	}
	h.respond(c, w)
}

// Next handles POST /api/v1/transfer-requests/:session/next.
func (h *WizardHandler) Next(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}
	if err := w.Advance(); err != nil {
		h.writeError(c, w, err)
		return
	}
	h.respond(c, w)
}

// Back handles POST /api/v1/transfer-requests/:session/back.
func (h *WizardHandler) Back(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}
	if err := w.Back(); err != nil {
		h.writeError(c, w, err)
		return
	}
	h.respond(c, w)
}

// Submit handles POST /api/v1/transfer-requests/:session/submit.
func (h *WizardHandler) Submit(c *gin.Context) {
	w, ok := h.session(c)
	if !ok {
		return
	}

	// A disconnecting browser must not abort a write already in flight.
	ctx := context.WithoutCancel(c.Request.Context())

	receipt, err := w.Submit(ctx, h.submitter)
	if err != nil {
		h.writeError(c, w, err)
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Transfer request submitted", map[string]interface{}{
			"session_id":     c.Param("session"),
			"transaction_id": receipt.TransactionID,
			"status":         receipt.Status,
		})
	}
	h.respond(c, w)
}

// Discard handles DELETE /api/v1/transfer-requests/:session.
func (h *WizardHandler) Discard(c *gin.Context) {
	if !h.store.Discard(c.Param("session")) {
		apierrors.NotFound(c, "Transfer request not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WizardHandler) session(c *gin.Context) (*wizard.Wizard, bool) {
	w, err := h.store.Get(c.Param("session"))
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			apierrors.NotFound(c, "Transfer request not found")
			return nil, false
		}
		apierrors.InternalServerError(c, "Failed to load transfer request", err)
		return nil, false
	}
	return w, true
}

func (h *WizardHandler) respond(c *gin.Context, w *wizard.Wizard) {
	c.JSON(http.StatusOK, WizardResponse{
		SessionID: c.Param("session"),
		View:      w.Snapshot(),
	})
}

// writeError maps wizard errors onto the API error envelope.
func (h *WizardHandler) writeError(c *gin.Context, w *wizard.Wizard, err error) {
	view := w.Snapshot()

	switch {
	case errors.Is(err, wizard.ErrGuardFailed):
		apierrors.Conflict(c, apierrors.ErrGuardFailed, "Required fields are missing", map[string]interface{}{
			"step":           view.StepName,
			"missing_fields": view.MissingFields,
		})
	case errors.Is(err, wizard.ErrInvalidTransition),
		errors.Is(err, wizard.ErrCompleted):
		apierrors.Conflict(c, apierrors.ErrInvalidTransition, err.Error(), map[string]interface{}{
			"step": view.StepName,
		})
	case errors.Is(err, wizard.ErrSubmitInProgress):
		apierrors.Conflict(c, apierrors.ErrConflict, err.Error(), map[string]interface{}{
			"step": view.StepName,
		})
	case errors.Is(err, wizard.ErrSubmissionFailed):
		apierrors.SubmissionFailed(c, "Transfer request could not be submitted. Please try again.", err, map[string]interface{}{
			"wizard": WizardResponse{SessionID: c.Param("session"), View: view},
		})
	case errors.Is(err, wizard.ErrUnknownField):
		apierrors.BadRequest(c, err.Error(), nil)
	default:
		apierrors.InternalServerError(c, "Failed to update transfer request", err)
	}
}
