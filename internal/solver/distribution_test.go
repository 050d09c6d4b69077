package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistribute(t *testing.T) {
	cases := []struct {
		hours int
		want  DistributionRule
	}{
		{0, DistributionRule{}},
		{1, DistributionRule{MaxPerDay: 3, MinDistinctDays: 1, PreferredPerDay: 1}},
		{4, DistributionRule{MaxPerDay: 3, MinDistinctDays: 1, PreferredPerDay: 1}},
		{5, DistributionRule{MaxPerDay: 1, MinDistinctDays: 5, PreferredPerDay: 1}},
		{6, DistributionRule{MaxPerDay: 3, MinDistinctDays: 2, PreferredPerDay: 3}},
		{7, DistributionRule{MaxPerDay: 3, MinDistinctDays: 3, PreferredPerDay: 2}},
		{9, DistributionRule{MaxPerDay: 3, MinDistinctDays: 3, PreferredPerDay: 3}},
	}

	for _, tc := range cases {
		got := Distribute(tc.hours)
		assert.Equal(t, tc.want, got, "hours=%d", tc.hours)
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 0, ceilDiv(5, 0))
	assert.Equal(t, 2, ceilDiv(4, 3))
	assert.Equal(t, 3, ceilDiv(9, 3))
	assert.Equal(t, 3, ceilDiv(7, 3))
}
