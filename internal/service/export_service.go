package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
	"github.com/csab-tools/csab-match-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Institute", "Program", "Quota", "Seat Type", "Gender", "Opening Rank", "Closing Rank", "Year", "Round"}

// pdf column weights keep institute/program readable on A4 landscape.
var exportColumnWeights = map[string]float64{
	"Institute":    3,
	"Program":      3,
	"Quota":        1,
	"Seat Type":    1,
	"Gender":       1.5,
	"Opening Rank": 1.2,
	"Closing Rank": 1.2,
	"Year":         0.8,
	"Round":        0.8,
}

// ExportFile is a rendered export ready to stream as an attachment.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the full match result set as CSV or PDF.
type ExportService struct {
	match   *MatchService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	maxRows int
}

// NewExportService constructs an export service.
func NewExportService(match *MatchService, logger *zap.Logger, maxRows int) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows < 1 {
		maxRows = 5000
	}
	return &ExportService{
		match:   match,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
		maxRows: maxRows,
	}
}

// Render produces an export of everything the request matches. Pagination
// is ignored: exports always cover the full candidate set, capped at
// maxRows to bound memory.
func (s *ExportService) Render(ctx context.Context, req MatchRequest, format string) (*ExportFile, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	req.FetchAll = true
	page, err := s.match.Match(ctx, req)
	if err != nil {
		return nil, err
	}

	results := page.Results
	if len(results) > s.maxRows {
		s.logger.Warn("export truncated", zap.Int("rows", len(results)), zap.Int("max", s.maxRows))
		results = results[:s.maxRows]
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(results))}
	for _, r := range results {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Institute":    r.Institute,
			"Program":      r.ProgramName,
			"Quota":        r.Quota,
			"Seat Type":    r.SeatType,
			"Gender":       r.Gender,
			"Opening Rank": r.OpeningRank,
			"Closing Rank": r.ClosingRank,
			"Year":         fmt.Sprintf("%d", r.Year),
			"Round":        fmt.Sprintf("%d", r.Round),
		})
	}

	fileStem := fmt.Sprintf("college-matches-%s", uuid.NewString()[:8])

	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{FileName: fileStem + ".csv", ContentType: "text/csv", Content: content}, nil
	default:
		content, err := s.pdf.Render(dataset, "College Match Results", exportColumnWeights)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{FileName: fileStem + ".pdf", ContentType: "application/pdf", Content: content}, nil
	}
}
