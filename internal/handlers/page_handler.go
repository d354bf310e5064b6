package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/stwalsh4118/atlas/portal/internal/errors"
	"github.com/stwalsh4118/atlas/portal/internal/middleware"
	"github.com/stwalsh4118/atlas/portal/internal/services"
)

// PageHandler serves the read-only portal pages. Every request mounts a
// fresh page controller, so one request's load never leaks into another.
type PageHandler struct {
	pages *services.Pages
}

// NewPageHandler creates a new PageHandler instance.
func NewPageHandler(pages *services.Pages) *PageHandler {
	return &PageHandler{pages: pages}
}

// SearchRequest represents the query parameters for the search page.
type SearchRequest struct {
	Query string `form:"q" binding:"max=200"`
}

// MapRequest represents the query parameters for the map page.
type MapRequest struct {
	Query    string `form:"q" binding:"max=200"`
	Selected string `form:"selected" binding:"max=64"`
}

// Search handles GET /api/v1/search.
// It loads the parcel list and, when q is set, filters it.
func (h *PageHandler) Search(c *gin.Context) {
	var req SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	ctx := c.Request.Context()
	page := h.pages.Search()
	view := page.Load(ctx)

	if q := strings.TrimSpace(req.Query); q != "" {
		var err error
		view, err = page.Search(ctx, q)
		if err != nil {
			if clientGone(c, err) {
				return
			}
			apierrors.InternalServerError(c, "Search could not be completed", err)
			return
		}
	}

	c.JSON(http.StatusOK, view)
}

// ParcelDetail handles GET /api/v1/parcels/:id.
func (h *PageHandler) ParcelDetail(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		apierrors.BadRequest(c, "Parcel id is required", nil)
		return
	}

	view := h.pages.ParcelDetail().Load(c.Request.Context(), id)
	c.JSON(http.StatusOK, view)
}

// Transfers handles GET /api/v1/transfers.
func (h *PageHandler) Transfers(c *gin.Context) {
	c.JSON(http.StatusOK, h.pages.Transfers().Load(c.Request.Context()))
}

// AdminDashboard handles GET /api/v1/admin/dashboard.
// Each section reports its own fetch state.
func (h *PageHandler) AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.pages.Admin().Load(c.Request.Context()))
}

// Map handles GET /api/v1/map.
func (h *PageHandler) Map(c *gin.Context) {
	var req MapRequest
	if !bindQuery(c, &req) {
		return
	}

	page := h.pages.Map()
	view := page.Filter(req.Query)

	if req.Selected != "" {
		var err error
		view, err = page.Select(req.Selected)
		if errors.Is(err, services.ErrMarkerNotFound) {
			apierrors.NotFound(c, "No parcel with that id on the map")
			return
		}
	}

	c.JSON(http.StatusOK, view)
}

// bindQuery binds query parameters into req and writes the error response
// when binding fails.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		if validationErrors, ok := asValidationErrors(err); ok {
			apierrors.ValidationError(c, validationErrors)
			return false
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return false
	}
	return true
}

func asValidationErrors(err error) (validator.ValidationErrors, bool) {
	var validationErrors validator.ValidationErrors
	ok := errors.As(err, &validationErrors)
	return validationErrors, ok
}

// clientGone reports whether err is the request context ending. Nothing is
// written in that case since nobody is listening.
func clientGone(c *gin.Context, err error) bool {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if log := middleware.GetLogger(c); log != nil {
		log.Debug("Request abandoned by client", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Abort()
	return true
}
