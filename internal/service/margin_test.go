package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerMarginTable(t *testing.T) {
	cases := []struct {
		rank   int
		margin int
	}{
		{-5, 0},
		{0, 0},
		{1, 1500},
		{9999, 1500},
		{10000, 1500},
		{10001, 2500},
		{20000, 2500},
		{20001, 3200},
		{30000, 3200},
		{30001, 3900},
		{40000, 3900},
		{40001, 4500},
		{50000, 4500},
		{50001, 5000},
		{60000, 5000},
		{60001, 5500},
		{70000, 5500},
		{70001, 6000},
		{80000, 6000},
		{80001, 8500},
		{90000, 8500},
		{90001, 10500},
		{100000, 10500},
		{100001, 12500},
		{150000, 12500},
		{150001, 20000},
		{210000, 20000},
		{210001, 30000},
		{1000000, 30000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.margin, LowerMargin(tc.rank), "rank %d", tc.rank)
	}
}

func TestLowerMarginMonotonic(t *testing.T) {
	prev := 0
	for rank := 1; rank <= 250000; rank += 97 {
		margin := LowerMargin(rank)
		assert.GreaterOrEqual(t, margin, prev, "rank %d", rank)
		prev = margin
	}
}

func TestMinAllowedRank(t *testing.T) {
	assert.Equal(t, 45500, MinAllowedRank(50000))
	assert.Equal(t, 1, MinAllowedRank(1))
	assert.Equal(t, 1, MinAllowedRank(1200))
	assert.Equal(t, 8500, MinAllowedRank(10000))
	assert.Equal(t, 7501, MinAllowedRank(10001))
}
