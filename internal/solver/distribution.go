package solver

// DistributionRule is the output of the pure Distribution Policy function
// (spec.md §4.3): the per-day ceiling, the minimum number of distinct days
// a valid assignment must span, and a preferred even split.
type DistributionRule struct {
	MaxPerDay       int
	MinDistinctDays int
	PreferredPerDay int
}

// Distribute implements the spec.md §4.3 table exactly:
//
//	h(c)   max_per_day  min_distinct_days  preferred_per_day
//	1..4   3            1                  1
//	5      1            5                  1
//	6..    3            ceil(h/3)          floor(h/min_days)
//
// Ties are broken toward spreading (more days), never stacking.
func Distribute(hours int) DistributionRule {
	switch {
	case hours <= 0:
		return DistributionRule{}
	case hours <= 4:
		return DistributionRule{MaxPerDay: 3, MinDistinctDays: 1, PreferredPerDay: 1}
	case hours == 5:
		return DistributionRule{MaxPerDay: 1, MinDistinctDays: 5, PreferredPerDay: 1}
	default:
		minDays := ceilDiv(hours, 3)
		return DistributionRule{
			MaxPerDay:       3,
			MinDistinctDays: minDays,
			PreferredPerDay: hours / minDays,
		}
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
