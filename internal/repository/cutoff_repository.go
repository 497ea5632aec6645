package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/csab-tools/csab-match-api/internal/models"
)

// sanitizedClosingRank strips non-digit noise ("1234P") from the stored
// closing rank text and yields NULL for empty results, so unreachable rows
// fall out of admissibility predicates and sort last on distance.
const sanitizedClosingRank = "NULLIF(regexp_replace(closing_rank, '[^0-9]', '', 'g'), '')::bigint"

const cutoffColumns = "institute, program_name, quota, seat_type, gender, opening_rank, closing_rank, year, round"

// CutoffRepository reads historical admission cutoffs.
type CutoffRepository struct {
	db *sqlx.DB
}

// NewCutoffRepository constructs a CutoffRepository.
func NewCutoffRepository(db *sqlx.DB) *CutoffRepository {
	return &CutoffRepository{db: db}
}

// List returns cutoffs matching the filter in the coarse SQL pre-sort order.
// The relevance re-sort happens in the service layer.
func (r *CutoffRepository) List(ctx context.Context, filter models.CutoffFilter) ([]models.Cutoff, error) {
	where, args := buildCutoffConditions(filter)

	sortKeys := []string{"year DESC"}
	if filter.Round == 0 {
		sortKeys = append(sortKeys, "round DESC")
	}
	if filter.UserRank > 0 {
		sortKeys = append(sortKeys, fmt.Sprintf("ABS(%s - $%d) ASC NULLS LAST", sanitizedClosingRank, len(args)+1))
		args = append(args, filter.UserRank)
	}
	sortKeys = append(sortKeys, "institute ASC", "program_name ASC")

	query := fmt.Sprintf("SELECT %s FROM cutoffs WHERE %s ORDER BY %s",
		cutoffColumns, where, strings.Join(sortKeys, ", "))

	if !filter.FetchAll {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		size := filter.PageSize
		if size < 1 {
			size = 25
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, size, (page-1)*size)
	}

	var cutoffs []models.Cutoff
	if err := r.db.SelectContext(ctx, &cutoffs, query, args...); err != nil {
		return nil, fmt.Errorf("list cutoffs: %w", err)
	}
	return cutoffs, nil
}

// Count returns the number of rows matching the filter, ignoring pagination.
func (r *CutoffRepository) Count(ctx context.Context, filter models.CutoffFilter) (int, error) {
	where, args := buildCutoffConditions(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM cutoffs WHERE %s", where)

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count cutoffs: %w", err)
	}
	return total, nil
}

// Trends returns the full year/round history of a single offer, oldest first.
func (r *CutoffRepository) Trends(ctx context.Context, filter models.TrendFilter) ([]models.Cutoff, error) {
	conditions := []string{"institute = $1", "program_name = $2", "seat_type = $3"}
	args := []interface{}{filter.Institute, filter.Program, filter.SeatType}

	if filter.Quota != "" {
		conditions = append(conditions, fmt.Sprintf("quota = $%d", len(args)+1))
		args = append(args, filter.Quota)
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", len(args)+1))
		args = append(args, filter.Gender)
	}

	query := fmt.Sprintf("SELECT %s FROM cutoffs WHERE %s ORDER BY year ASC, round ASC",
		cutoffColumns, strings.Join(conditions, " AND "))

	var cutoffs []models.Cutoff
	if err := r.db.SelectContext(ctx, &cutoffs, query, args...); err != nil {
		return nil, fmt.Errorf("list cutoff trends: %w", err)
	}
	return cutoffs, nil
}

func buildCutoffConditions(filter models.CutoffFilter) (string, []interface{}) {
	conditions := []string{"seat_type = $1"}
	args := []interface{}{filter.SeatType}

	if filter.Year > 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.Round > 0 {
		conditions = append(conditions, fmt.Sprintf("round = $%d", len(args)+1))
		args = append(args, filter.Round)
	}
	if filter.Quota != "" {
		conditions = append(conditions, fmt.Sprintf("quota = $%d", len(args)+1))
		args = append(args, filter.Quota)
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", len(args)+1))
		args = append(args, filter.Gender)
	}
	if filter.Institute != "" {
		conditions = append(conditions, fmt.Sprintf("institute = $%d", len(args)+1))
		args = append(args, filter.Institute)
	}
	if filter.ProgramSearch != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(program_name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.ProgramSearch)+"%")
	}
	if filter.MinClosingRank > 0 {
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", sanitizedClosingRank, len(args)+1))
		args = append(args, filter.MinClosingRank)
	}

	return strings.Join(conditions, " AND "), args
}
