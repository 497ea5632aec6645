package models

import (
	"database/sql"
	"strconv"
	"strings"
)

// Cutoff is one historical admission record: the opening and closing rank
// for an institute/program seat in a given counselling year and round.
// Opening and closing ranks are stored as raw text because the source data
// carries suffixes like "123P" for preparatory ranks.
type Cutoff struct {
	Institute   string         `db:"institute" json:"institute"`
	ProgramName string         `db:"program_name" json:"program_name"`
	Quota       string         `db:"quota" json:"quota"`
	SeatType    string         `db:"seat_type" json:"seat_type"`
	Gender      string         `db:"gender" json:"gender"`
	OpeningRank sql.NullString `db:"opening_rank" json:"-"`
	ClosingRank sql.NullString `db:"closing_rank" json:"-"`
	Year        int            `db:"year" json:"year"`
	Round       int            `db:"round" json:"round"`
}

// SlugID derives a deterministic identity key from every identifying field.
// Lower-cased, non-alphanumeric runs collapsed to single hyphens, outer
// hyphens trimmed. Records differing only in year or round get distinct IDs.
func (c Cutoff) SlugID() string {
	parts := []string{
		c.Institute,
		c.ProgramName,
		c.Quota,
		c.SeatType,
		c.Gender,
		strconv.Itoa(c.Year),
		strconv.Itoa(c.Round),
	}
	var b strings.Builder
	b.Grow(64)
	pendingHyphen := false
	for _, part := range parts {
		for _, r := range strings.ToLower(part) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				if pendingHyphen && b.Len() > 0 {
					b.WriteByte('-')
				}
				pendingHyphen = false
				b.WriteRune(r)
			} else {
				pendingHyphen = true
			}
		}
		pendingHyphen = true
	}
	return b.String()
}

// CutoffFilter is the normalized predicate set handed to the repository.
// Zero values mean "not filtered". MinClosingRank > 0 activates the
// rank-admissibility predicate, and UserRank > 0 adds the distance pre-sort.
type CutoffFilter struct {
	SeatType       string
	Year           int
	Round          int
	Quota          string
	Gender         string
	Institute      string
	ProgramSearch  string
	MinClosingRank int
	UserRank       int

	Page     int
	PageSize int
	FetchAll bool
}

// TrendFilter selects the full round-by-round history of one offer.
type TrendFilter struct {
	Institute string
	Program   string
	SeatType  string
	Quota     string
	Gender    string
}

// MatchResult is the identity-bearing view of a Cutoff returned to clients.
type MatchResult struct {
	ID          string `json:"id"`
	Institute   string `json:"institute"`
	ProgramName string `json:"program_name"`
	Quota       string `json:"quota"`
	SeatType    string `json:"seat_type"`
	Gender      string `json:"gender"`
	OpeningRank string `json:"opening_rank,omitempty"`
	ClosingRank string `json:"closing_rank,omitempty"`
	Year        int    `json:"year"`
	Round       int    `json:"round"`
}

// NewMatchResult builds the response view for a cutoff row.
func NewMatchResult(c Cutoff) MatchResult {
	return MatchResult{
		ID:          c.SlugID(),
		Institute:   c.Institute,
		ProgramName: c.ProgramName,
		Quota:       c.Quota,
		SeatType:    c.SeatType,
		Gender:      c.Gender,
		OpeningRank: c.OpeningRank.String,
		ClosingRank: c.ClosingRank.String,
		Year:        c.Year,
		Round:       c.Round,
	}
}

// Pagination is the shared paging metadata block.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// MatchPage is the paginated match response envelope body.
type MatchPage struct {
	Results    []MatchResult `json:"results"`
	Pagination Pagination    `json:"pagination"`
}
