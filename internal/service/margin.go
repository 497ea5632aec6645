package service

// rankBand maps an inclusive upper rank bound to its reach-down margin.
type rankBand struct {
	upper  int
	margin int
}

// Hand-tuned step table. Margins widen super-linearly at weaker ranks
// because cutoff variance across years grows there. The breakpoints are
// load-bearing for result compatibility; do not replace with a formula.
var rankBands = []rankBand{
	{10000, 1500},
	{20000, 2500},
	{30000, 3200},
	{40000, 3900},
	{50000, 4500},
	{60000, 5000},
	{70000, 5500},
	{80000, 6000},
	{90000, 8500},
	{100000, 10500},
	{150000, 12500},
	{210000, 20000},
}

const tailMargin = 30000

// LowerMargin returns how far below the given rank a closing rank may fall
// and still count as reachable. Ranks below 1 get no widening.
func LowerMargin(rank int) int {
	if rank < 1 {
		return 0
	}
	for _, band := range rankBands {
		if rank <= band.upper {
			return band.margin
		}
	}
	return tailMargin
}

// MinAllowedRank is the lowest admissible sanitized closing rank for a
// user rank, clamped so the window never extends above rank 1.
func MinAllowedRank(rank int) int {
	min := rank - LowerMargin(rank)
	if min < 1 {
		min = 1
	}
	return min
}
