package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csab-tools/csab-match-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func cutoffRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"institute", "program_name", "quota", "seat_type", "gender",
		"opening_rank", "closing_rank", "year", "round",
	})
}

func TestCutoffListQueryShape(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCutoffRepository(db)

	query := "SELECT institute, program_name, quota, seat_type, gender, opening_rank, closing_rank, year, round " +
		"FROM cutoffs WHERE seat_type = $1 AND year = $2 AND " +
		"NULLIF(regexp_replace(closing_rank, '[^0-9]', '', 'g'), '')::bigint >= $3 " +
		"ORDER BY year DESC, round DESC, " +
		"ABS(NULLIF(regexp_replace(closing_rank, '[^0-9]', '', 'g'), '')::bigint - $4) ASC NULLS LAST, " +
		"institute ASC, program_name ASC LIMIT 25 OFFSET 25"

	mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$").
		WithArgs("OPEN", 2024, 48500, 50000).
		WillReturnRows(cutoffRows().
			AddRow("IIT Delhi", "cse", "AI", "OPEN", "Gender-Neutral", "100", "48900", 2024, 2))

	cutoffs, err := repo.List(context.Background(), models.CutoffFilter{
		SeatType:       "OPEN",
		Year:           2024,
		MinClosingRank: 48500,
		UserRank:       50000,
		Page:           2,
		PageSize:       25,
	})
	require.NoError(t, err)
	require.Len(t, cutoffs, 1)
	assert.Equal(t, "IIT Delhi", cutoffs[0].Institute)
	assert.Equal(t, "48900", cutoffs[0].ClosingRank.String)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCutoffListFetchAllHasNoLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCutoffRepository(db)

	query := "SELECT institute, program_name, quota, seat_type, gender, opening_rank, closing_rank, year, round " +
		"FROM cutoffs WHERE seat_type = $1 " +
		"ORDER BY year DESC, round DESC, institute ASC, program_name ASC"

	mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$").
		WithArgs("OPEN").
		WillReturnRows(cutoffRows())

	_, err := repo.List(context.Background(), models.CutoffFilter{SeatType: "OPEN", FetchAll: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCutoffListPinnedRoundDropsRoundSort(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCutoffRepository(db)

	query := "SELECT institute, program_name, quota, seat_type, gender, opening_rank, closing_rank, year, round " +
		"FROM cutoffs WHERE seat_type = $1 AND round = $2 " +
		"ORDER BY year DESC, institute ASC, program_name ASC LIMIT 25 OFFSET 0"

	mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$").
		WithArgs("OPEN", 2).
		WillReturnRows(cutoffRows())

	_, err := repo.List(context.Background(), models.CutoffFilter{SeatType: "OPEN", Round: 2})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCutoffListProgramSearchLowercased(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCutoffRepository(db)

	query := "SELECT institute, program_name, quota, seat_type, gender, opening_rank, closing_rank, year, round " +
		"FROM cutoffs WHERE seat_type = $1 AND LOWER(program_name) LIKE $2 " +
		"ORDER BY year DESC, round DESC, institute ASC, program_name ASC LIMIT 25 OFFSET 0"

	mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$").
		WithArgs("OPEN", "%computer%").
		WillReturnRows(cutoffRows())

	_, err := repo.List(context.Background(), models.CutoffFilter{SeatType: "OPEN", ProgramSearch: "Computer"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCutoffCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCutoffRepository(db)

	query := "SELECT COUNT(*) FROM cutoffs WHERE seat_type = $1 AND quota = $2"

	mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$").
		WithArgs("OPEN", "HS").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background(), models.CutoffFilter{SeatType: "OPEN", Quota: "HS"})
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCutoffTrendsChronological(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCutoffRepository(db)

	query := "SELECT institute, program_name, quota, seat_type, gender, opening_rank, closing_rank, year, round " +
		"FROM cutoffs WHERE institute = $1 AND program_name = $2 AND seat_type = $3 AND gender = $4 " +
		"ORDER BY year ASC, round ASC"

	mock.ExpectQuery("^" + regexp.QuoteMeta(query) + "$").
		WithArgs("NIT Trichy", "cse", "OPEN", "Gender-Neutral").
		WillReturnRows(cutoffRows().
			AddRow("NIT Trichy", "cse", "HS", "OPEN", "Gender-Neutral", "500", "1200", 2022, 1).
			AddRow("NIT Trichy", "cse", "HS", "OPEN", "Gender-Neutral", "480", "1100", 2023, 1))

	cutoffs, err := repo.Trends(context.Background(), models.TrendFilter{
		Institute: "NIT Trichy",
		Program:   "cse",
		SeatType:  "OPEN",
		Gender:    "Gender-Neutral",
	})
	require.NoError(t, err)
	require.Len(t, cutoffs, 2)
	assert.Equal(t, 2022, cutoffs[0].Year)
	assert.NoError(t, mock.ExpectationsWereMet())
}
