package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepRange(t *testing.T) {
	low, high, ok := ParseRepRange("8-12")
	assert.True(t, ok)
	assert.Equal(t, 8, low)
	assert.Equal(t, 12, high)

	low, high, ok = ParseRepRange(" 15 - 10 ")
	assert.True(t, ok)
	assert.Equal(t, 10, low)
	assert.Equal(t, 15, high)

	for _, r := range []string{"AMRAP", "failure", "", "8", "8-"} {
		_, _, ok := ParseRepRange(r)
		assert.False(t, ok, r)
	}
}

func TestFitReps(t *testing.T) {
	assert.Equal(t, RepsBelow, FitReps(5, "6-10"))
	assert.Equal(t, RepsInRange, FitReps(6, "6-10"))
	assert.Equal(t, RepsInRange, FitReps(10, "6-10"))
	assert.Equal(t, RepsAbove, FitReps(11, "6-10"))
	assert.Equal(t, RepsUnknown, FitReps(30, "AMRAP"))
}

func TestTip(t *testing.T) {
	assert.Contains(t, Tip(13, "8-12"), "go up")
	assert.Contains(t, Tip(6, "8-12"), "dropping")
	assert.Empty(t, Tip(10, "8-12"))
	assert.Empty(t, Tip(50, "failure"))
}
