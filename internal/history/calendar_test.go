package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid(t *testing.T) {
	// March 2025 starts on a Saturday.
	grid := MonthGrid(2025, time.March, time.UTC)
	require.Len(t, grid, 6+31)
	for i := 0; i < 6; i++ {
		assert.Nil(t, grid[i])
	}
	require.NotNil(t, grid[6])
	assert.Equal(t, 1, grid[6].Day())
	assert.Equal(t, 31, grid[len(grid)-1].Day())
}

func TestMonthGridLeapFebruary(t *testing.T) {
	grid := MonthGrid(2024, time.February, time.UTC)
	assert.Equal(t, 29, grid[len(grid)-1].Day())
}

func TestShiftMonth(t *testing.T) {
	y, m := ShiftMonth(2025, time.January, -1)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)

	y, m = ShiftMonth(2025, time.December, 1)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)
}

func TestWeekly(t *testing.T) {
	s, _ := newStore(t)
	// Sun Mar 2 2025 starts a week.
	s.Put(session(KindA, day(2, 9)))
	s.Put(session(KindRest, day(3, 9)))
	s.Put(session(KindB, day(10, 9)))
	s.Put(session(KindC, time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC))) // out of range

	weeks := s.Weekly(day(12, 9), 2)
	require.Len(t, weeks, 2)
	assert.Equal(t, day(2, 0), weeks[0].Start)
	assert.Equal(t, 1, weeks[0].Counts[KindA])
	assert.Equal(t, 1, weeks[0].Counts[KindRest])
	assert.Equal(t, 1, weeks[1].Counts[KindB])
	assert.Zero(t, weeks[1].Counts[KindC])
}
