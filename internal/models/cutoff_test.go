package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugIDDeterministic(t *testing.T) {
	c := Cutoff{
		Institute:   "National Institute of Technology, Tiruchirappalli",
		ProgramName: "Computer Science & Engineering (4 Years)",
		Quota:       "OS",
		SeatType:    "OPEN",
		Gender:      "Gender-Neutral",
		Year:        2024,
		Round:       2,
	}

	want := "national-institute-of-technology-tiruchirappalli-computer-science-engineering-4-years-os-open-gender-neutral-2024-2"
	assert.Equal(t, want, c.SlugID())
	assert.Equal(t, c.SlugID(), c.SlugID())
}

func TestSlugIDDistinguishesYearAndRound(t *testing.T) {
	base := Cutoff{Institute: "X", ProgramName: "p", Quota: "AI", SeatType: "OPEN", Gender: "F", Year: 2024, Round: 1}

	otherYear := base
	otherYear.Year = 2023
	otherRound := base
	otherRound.Round = 2

	assert.NotEqual(t, base.SlugID(), otherYear.SlugID())
	assert.NotEqual(t, base.SlugID(), otherRound.SlugID())
}

func TestNewMatchResultFlattensNullRanks(t *testing.T) {
	c := Cutoff{
		Institute:   "X",
		ProgramName: "p",
		SeatType:    "OPEN",
		OpeningRank: sql.NullString{},
		ClosingRank: sql.NullString{String: "1234P", Valid: true},
		Year:        2024,
		Round:       1,
	}

	r := NewMatchResult(c)
	assert.Empty(t, r.OpeningRank)
	// The raw text survives; sanitization is a ranking concern, not a
	// presentation one.
	assert.Equal(t, "1234P", r.ClosingRank)
	assert.Equal(t, c.SlugID(), r.ID)
}
