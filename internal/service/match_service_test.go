package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/csab-tools/csab-match-api/internal/models"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
)

type mockCutoffRepo struct {
	cutoffs    []models.Cutoff
	total      int
	lastFilter models.CutoffFilter
	countCalls int
	err        error
}

func (m *mockCutoffRepo) List(ctx context.Context, filter models.CutoffFilter) ([]models.Cutoff, error) {
	m.lastFilter = filter
	if m.err != nil {
		return nil, m.err
	}
	return m.cutoffs, nil
}

func (m *mockCutoffRepo) Count(ctx context.Context, filter models.CutoffFilter) (int, error) {
	m.countCalls++
	if m.err != nil {
		return 0, m.err
	}
	return m.total, nil
}

func intPtr(n int) *int { return &n }

func newMatchService(repo *mockCutoffRepo) *MatchService {
	return NewMatchService(repo, validator.New(), zap.NewNop(), 25, 100)
}

func TestMatchRequiresSeatType(t *testing.T) {
	repo := &mockCutoffRepo{}
	svc := newMatchService(repo)

	_, err := svc.Match(context.Background(), MatchRequest{Rank: intPtr(1000)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.lastFilter.SeatType, "no retrieval call on validation failure")
}

func TestMatchRejectsNonPositiveRank(t *testing.T) {
	svc := newMatchService(&mockCutoffRepo{})

	_, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", Rank: intPtr(0)})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMatchComputesAdmissibilityWindow(t *testing.T) {
	repo := &mockCutoffRepo{}
	svc := newMatchService(repo)

	_, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", Rank: intPtr(50000)})
	require.NoError(t, err)
	assert.Equal(t, 50000, repo.lastFilter.UserRank)
	assert.Equal(t, 45500, repo.lastFilter.MinClosingRank)
}

func TestMatchInstitutePinBypassesRankMachinery(t *testing.T) {
	repo := &mockCutoffRepo{cutoffs: []models.Cutoff{
		{Institute: "NIT Trichy", ProgramName: "cse", SeatType: "OPEN", ClosingRank: sql.NullString{String: "900000", Valid: true}, Year: 2024, Round: 2},
		{Institute: "NIT Trichy", ProgramName: "ece", SeatType: "OPEN", ClosingRank: sql.NullString{String: "100", Valid: true}, Year: 2024, Round: 2},
	}}
	svc := newMatchService(repo)

	page, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", Rank: intPtr(50000), Institute: "NIT Trichy"})
	require.NoError(t, err)
	assert.Zero(t, repo.lastFilter.MinClosingRank)
	assert.Zero(t, repo.lastFilter.UserRank)
	// No relevance re-sort: repository order is preserved.
	assert.Equal(t, "cse", page.Results[0].ProgramName)
	assert.Equal(t, "ece", page.Results[1].ProgramName)
}

func TestMatchReordersByRelevance(t *testing.T) {
	repo := &mockCutoffRepo{cutoffs: []models.Cutoff{
		{Institute: "A", ProgramName: "cs", SeatType: "OPEN", ClosingRank: sql.NullString{String: "48500", Valid: true}, Year: 2024, Round: 1},
		{Institute: "B", ProgramName: "cs", SeatType: "OPEN", ClosingRank: sql.NullString{String: "49200", Valid: true}, Year: 2024, Round: 1},
		{Institute: "C", ProgramName: "cs", SeatType: "OPEN", ClosingRank: sql.NullString{String: "60000", Valid: true}, Year: 2024, Round: 1},
		{Institute: "D", ProgramName: "cs", SeatType: "OPEN", ClosingRank: sql.NullString{String: "abc", Valid: true}, Year: 2024, Round: 1},
	}, total: 4}
	svc := newMatchService(repo)

	page, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", Rank: intPtr(50000)})
	require.NoError(t, err)
	require.Len(t, page.Results, 4)
	assert.Equal(t, "49200", page.Results[0].ClosingRank)
	assert.Equal(t, "48500", page.Results[1].ClosingRank)
	assert.Equal(t, "60000", page.Results[2].ClosingRank)
	assert.Equal(t, "abc", page.Results[3].ClosingRank)
}

func TestMatchFetchAllSkipsCountQuery(t *testing.T) {
	repo := &mockCutoffRepo{cutoffs: []models.Cutoff{
		{Institute: "A", ProgramName: "cs", SeatType: "OPEN", Year: 2024, Round: 1},
		{Institute: "B", ProgramName: "cs", SeatType: "OPEN", Year: 2024, Round: 1},
	}, total: 9999}
	svc := newMatchService(repo)

	page, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", FetchAll: true})
	require.NoError(t, err)
	assert.Zero(t, repo.countCalls)
	assert.True(t, repo.lastFilter.FetchAll)
	assert.Equal(t, 2, page.Pagination.TotalCount)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.Equal(t, 1, page.Pagination.Page)
}

func TestMatchPaginationTotals(t *testing.T) {
	repo := &mockCutoffRepo{total: 51}
	svc := newMatchService(repo)

	page, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", Page: 2, Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 25, page.Pagination.PageSize)
	assert.Equal(t, 51, page.Pagination.TotalCount)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}

func TestMatchCapsPageSize(t *testing.T) {
	repo := &mockCutoffRepo{}
	svc := newMatchService(repo)

	_, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN", Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastFilter.PageSize)
}

func TestMatchPropagatesRetrievalFailure(t *testing.T) {
	repo := &mockCutoffRepo{err: errors.New("connection reset")}
	svc := newMatchService(repo)

	_, err := svc.Match(context.Background(), MatchRequest{SeatType: "OPEN"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestMatchServiceMargin(t *testing.T) {
	svc := newMatchService(&mockCutoffRepo{})
	assert.Equal(t, 4500, svc.Margin(50000))
	assert.Equal(t, 0, svc.Margin(-1))
}
