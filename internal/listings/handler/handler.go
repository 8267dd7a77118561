package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homely_backend/internal/listings/service"
	"homely_backend/internal/listings/transport"
	"homely_backend/platform/httpkit"
	"homely_backend/platform/validator"
)

// Handler handles HTTP requests for listings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid listing id"
)

// New creates a new listings handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Search lists listings matching the filters, featured first.
// GET /api/v1/listings
func (h *Handler) Search(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.Search(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Map returns projected markers for the filtered listings.
// GET /api/v1/listings/map
func (h *Handler) Map(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	result, err := h.svc.Map(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns one listing.
// GET /api/v1/listings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Similar returns listings in the same location.
// GET /api/v1/listings/:id/similar
func (h *Handler) Similar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Similar(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": result})
}

// Popup returns the map info window for a listing.
// GET /api/v1/listings/:id/popup
func (h *Handler) Popup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Popup(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Share returns share links for a listing.
// GET /api/v1/listings/:id/share
func (h *Handler) Share(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.ShareLinks(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PresignImage issues an upload URL for a listing photo.
// POST /api/v1/admin/listings/:id/images/presign
func (h *Handler) PresignImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.PresignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.PresignImageUpload(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// RefreshCatalog drops the cached snapshot so the next read hits the source.
// POST /api/v1/admin/listings/refresh
func (h *Handler) RefreshCatalog(c *gin.Context) {
	h.svc.Invalidate()
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindSearch(c *gin.Context) (transport.SearchRequest, bool) {
	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return req, false
	}
	return req, true
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}
