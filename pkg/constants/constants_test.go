package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskSeverity(t *testing.T) {
	cases := []struct {
		probability int
		impact      int
		want        string
	}{
		{5, 5, "high"},
		{3, 5, "high"},   // 15 恰好到达高风险阈值
		{2, 7, "medium"}, // 14 仍为中风险
		{4, 2, "medium"}, // 8 恰好到达中风险阈值
		{1, 7, "low"},    // 7 仍为低风险
		{1, 1, "low"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskSeverity(tc.probability, tc.impact),
			"probability=%d impact=%d", tc.probability, tc.impact)
	}
}

func TestIsValidRoom(t *testing.T) {
	for _, room := range Rooms {
		assert.True(t, IsValidRoom(room), room)
	}
	assert.False(t, IsValidRoom("lobby"))
	assert.False(t, IsValidRoom(""))
}

func TestFormatQuarter(t *testing.T) {
	assert.Equal(t, "2026Q3", FormatQuarter(2026, 3))
}
