package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// optionColumns allowlists the fields exposed through the dropdown-options
// endpoint; anything else is rejected before touching SQL.
var optionColumns = map[string]string{
	"institute":    "institute",
	"program_name": "program_name",
	"quota":        "quota",
	"seat_type":    "seat_type",
	"gender":       "gender",
	"year":         "year",
	"round":        "round",
}

// OptionRepository lists distinct filter values for dropdowns.
type OptionRepository struct {
	db *sqlx.DB
}

// NewOptionRepository constructs an OptionRepository.
func NewOptionRepository(db *sqlx.DB) *OptionRepository {
	return &OptionRepository{db: db}
}

// OptionField reports whether the field may be listed.
func OptionField(field string) bool {
	_, ok := optionColumns[field]
	return ok
}

// DistinctValues returns the sorted distinct values of an allowlisted column.
func (r *OptionRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	column, ok := optionColumns[field]
	if !ok {
		return nil, fmt.Errorf("unknown option field %q", field)
	}

	query := fmt.Sprintf("SELECT DISTINCT %s::text AS value FROM cutoffs WHERE %s IS NOT NULL ORDER BY value ASC", column, column)

	var values []string
	if err := r.db.SelectContext(ctx, &values, query); err != nil {
		return nil, fmt.Errorf("list %s options: %w", field, err)
	}
	return values, nil
}
