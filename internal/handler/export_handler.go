package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csab-tools/csab-match-api/internal/service"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
	"github.com/csab-tools/csab-match-api/pkg/response"
)

// ExportHandler streams match results as downloadable files.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Download godoc
// @Summary Export the full match result set
// @Tags Colleges
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param rank query int false "Competitive exam rank"
// @Param seatType query string true "Seat type"
// @Param year query int false "Year"
// @Param round query int false "Round"
// @Param quota query string false "Quota"
// @Param gender query string false "Gender"
// @Param institute query string false "Institute"
// @Param program query string false "Program substring"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /colleges/match/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	req := service.MatchRequest{
		SeatType:  strings.TrimSpace(c.Query("seatType")),
		Quota:     strings.TrimSpace(c.Query("quota")),
		Gender:    strings.TrimSpace(c.Query("gender")),
		Institute: strings.TrimSpace(c.Query("institute")),
		Program:   strings.TrimSpace(c.Query("program")),
	}

	for _, field := range []struct {
		name string
		dest **int
	}{
		{"rank", &req.Rank},
		{"year", &req.Year},
		{"round", &req.Round},
	} {
		raw := c.Query(field.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", field.name)))
			return
		}
		*field.dest = &v
	}

	file, err := h.exports.Render(c.Request.Context(), req, strings.ToLower(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(200, file.ContentType, file.Content)
}
