package service

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/csab-tools/csab-match-api/internal/models"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
)

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(newMatchService(&mockCutoffRepo{}), zap.NewNop(), 100)

	_, err := svc.Render(context.Background(), MatchRequest{SeatType: "OPEN"}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportCSVCoversFullSetAndForcesFetchAll(t *testing.T) {
	repo := &mockCutoffRepo{cutoffs: []models.Cutoff{
		{Institute: "IIT Delhi", ProgramName: "cse", Quota: "AI", SeatType: "OPEN", Gender: "Gender-Neutral",
			OpeningRank: sql.NullString{String: "100", Valid: true}, ClosingRank: sql.NullString{String: "450", Valid: true}, Year: 2024, Round: 2},
		{Institute: "NIT Trichy", ProgramName: "ece", Quota: "OS", SeatType: "OPEN", Gender: "Gender-Neutral",
			OpeningRank: sql.NullString{String: "900", Valid: true}, ClosingRank: sql.NullString{String: "2100", Valid: true}, Year: 2024, Round: 2},
	}}
	svc := NewExportService(newMatchService(repo), zap.NewNop(), 100)

	file, err := svc.Render(context.Background(), MatchRequest{SeatType: "OPEN", Page: 3, Limit: 1}, ExportFormatCSV)
	require.NoError(t, err)

	assert.True(t, repo.lastFilter.FetchAll, "exports ignore pagination")
	assert.Zero(t, repo.countCalls)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.FileName, ".csv"), file.FileName)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	require.Len(t, lines, 3, "header plus two rows")
	assert.Equal(t, "Institute,Program,Quota,Seat Type,Gender,Opening Rank,Closing Rank,Year,Round", lines[0])
	assert.Contains(t, lines[1], "IIT Delhi")
	assert.Contains(t, lines[1], "450")
	assert.Contains(t, lines[2], "NIT Trichy")
}

func TestExportTruncatesAtMaxRows(t *testing.T) {
	cutoffs := make([]models.Cutoff, 10)
	for i := range cutoffs {
		cutoffs[i] = models.Cutoff{Institute: "X", ProgramName: "p", SeatType: "OPEN", Year: 2024, Round: 1}
	}
	repo := &mockCutoffRepo{cutoffs: cutoffs}
	svc := NewExportService(newMatchService(repo), zap.NewNop(), 4)

	file, err := svc.Render(context.Background(), MatchRequest{SeatType: "OPEN"}, ExportFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(file.Content)), "\n")
	assert.Len(t, lines, 5, "header plus maxRows rows")
}

func TestExportPDFProducesDocument(t *testing.T) {
	repo := &mockCutoffRepo{cutoffs: []models.Cutoff{
		{Institute: "IIT Delhi", ProgramName: "cse", SeatType: "OPEN", ClosingRank: sql.NullString{String: "450", Valid: true}, Year: 2024, Round: 2},
	}}
	svc := NewExportService(newMatchService(repo), zap.NewNop(), 100)

	file, err := svc.Render(context.Background(), MatchRequest{SeatType: "OPEN"}, ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.FileName, ".pdf"), file.FileName)
	assert.True(t, bytes.HasPrefix(file.Content, []byte("%PDF")), "pdf magic bytes")
}
