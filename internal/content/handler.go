package content

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homely_backend/platform/httpkit"
	"homely_backend/platform/validator"
)

type suggestionsRequest struct {
	Query string `form:"q" validate:"max=100"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type whatsAppRequest struct {
	Placement string `form:"placement" validate:"omitempty,max=32"`
}

type whatsAppResponse struct {
	URL string `json:"url"`
}

// Handler serves site content.
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Site returns the whole content document.
// GET /api/v1/content
func (h *Handler) Site(c *gin.Context) {
	httpkit.OK(c, h.svc.Site())
}

// AreaSuggestions returns neighbourhoods for a partial city name.
// GET /api/v1/content/area-suggestions?q=
func (h *Handler) AreaSuggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.FieldErrors(err))
		return
	}
	httpkit.OK(c, suggestionsResponse{Suggestions: h.svc.AreaSuggestions(req.Query)})
}

// WhatsApp returns the prefilled wa.me link.
// GET /api/v1/content/whatsapp?placement=
func (h *Handler) WhatsApp(c *gin.Context) {
	var req whatsAppRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", validator.FieldErrors(err))
		return
	}

	link, err := h.svc.WhatsAppLink(req.Placement)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, whatsAppResponse{URL: link})
}
