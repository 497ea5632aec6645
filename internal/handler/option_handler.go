package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csab-tools/csab-match-api/internal/service"
	"github.com/csab-tools/csab-match-api/pkg/response"
)

// OptionHandler serves dropdown option lists.
type OptionHandler struct {
	options *service.OptionService
}

// NewOptionHandler constructs OptionHandler.
func NewOptionHandler(options *service.OptionService) *OptionHandler {
	return &OptionHandler{options: options}
}

// Values godoc
// @Summary Distinct values for a filter field
// @Tags Colleges
// @Produce json
// @Param field query string true "Field: institute|program_name|quota|seat_type|gender|year|round"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges/options [get]
func (h *OptionHandler) Values(c *gin.Context) {
	field := strings.TrimSpace(c.Query("field"))

	values, cached, err := h.options.Values(c.Request.Context(), field)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, values, nil, map[string]interface{}{"cached": cached})
}

// Invalidate godoc
// @Summary Drop cached option lists
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 204
// @Router /admin/cache/invalidate [post]
func (h *OptionHandler) Invalidate(c *gin.Context) {
	if err := h.options.Invalidate(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
