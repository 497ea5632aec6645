package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/csab-tools/csab-match-api/internal/service"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
	"github.com/csab-tools/csab-match-api/pkg/response"
)

// MatchHandler exposes the college-match endpoints.
type MatchHandler struct {
	matches *service.MatchService
}

// NewMatchHandler constructs MatchHandler.
func NewMatchHandler(matches *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// Match godoc
// @Summary Match colleges for a rank and filter selection
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.MatchRequest true "Match filters"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges/match [post]
func (h *MatchHandler) Match(c *gin.Context) {
	var req service.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	page, err := h.matches.Match(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page.Results, &page.Pagination)
}

// Margin godoc
// @Summary Reach-down margin for a rank
// @Tags Colleges
// @Produce json
// @Param rank query int true "Competitive exam rank"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /colleges/margin [get]
func (h *MatchHandler) Margin(c *gin.Context) {
	rank, err := strconv.Atoi(c.Query("rank"))
	if err != nil || rank < 1 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "rank must be a positive integer"))
		return
	}

	margin := h.matches.Margin(rank)
	minAllowed := rank - margin
	if minAllowed < 1 {
		minAllowed = 1
	}
	response.JSON(c, http.StatusOK, gin.H{
		"rank":             rank,
		"margin":           margin,
		"min_allowed_rank": minAllowed,
	}, nil)
}
