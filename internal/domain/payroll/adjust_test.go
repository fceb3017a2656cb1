package payroll

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAdjustments(t *testing.T) {
	cases := []struct {
		name     string
		percents []float64
		want     float64
	}{
		{"no adjustments", nil, 1000},
		{"zero skipped", []float64{0}, 1000},
		{"nan skipped", []float64{math.NaN(), 10}, 1100},
		{"compounded", []float64{10, 10}, 1210},
		{"negative reduces", []float64{-10}, 900},
		{"infinite skipped", []float64{math.Inf(1), math.Inf(-1), 10}, 1100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ApplyAdjustments(1000, tc.percents), 1e-9)
		})
	}
}

func TestParseAdjustments(t *testing.T) {
	got := ParseAdjustments([]FormValue{"5,5", "", "abc", "3", "Infinity", "1e400"})
	assert.Len(t, got, 6)
	assert.True(t, math.IsNaN(got[4]))
	assert.True(t, math.IsNaN(got[5]))
	assert.InDelta(t, 5.5, got[0], 1e-12)
	assert.True(t, math.IsNaN(got[1]))
	assert.True(t, math.IsNaN(got[2]))
	assert.InDelta(t, 3, got[3], 1e-12)
}
