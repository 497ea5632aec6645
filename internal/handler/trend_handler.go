package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csab-tools/csab-match-api/internal/service"
	"github.com/csab-tools/csab-match-api/pkg/response"
)

// TrendHandler serves cutoff history lookups.
type TrendHandler struct {
	trends *service.TrendService
}

// NewTrendHandler constructs TrendHandler.
func NewTrendHandler(trends *service.TrendService) *TrendHandler {
	return &TrendHandler{trends: trends}
}

// History godoc
// @Summary Year/round cutoff history for one offer
// @Tags Colleges
// @Produce json
// @Param institute query string true "Institute name"
// @Param program query string true "Program name"
// @Param seatType query string true "Seat type"
// @Param quota query string false "Quota"
// @Param gender query string false "Gender"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges/trends [get]
func (h *TrendHandler) History(c *gin.Context) {
	req := service.TrendRequest{
		Institute: strings.TrimSpace(c.Query("institute")),
		Program:   strings.TrimSpace(c.Query("program")),
		SeatType:  strings.TrimSpace(c.Query("seatType")),
		Quota:     strings.TrimSpace(c.Query("quota")),
		Gender:    strings.TrimSpace(c.Query("gender")),
	}

	history, err := h.trends.History(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
