package history

import "time"

// MonthGrid returns the days of a month laid out Sunday-first. Leading cells
// before the 1st are nil.
func MonthGrid(year int, month time.Month, loc *time.Location) []*time.Time {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1).Day()

	days := make([]*time.Time, 0, int(first.Weekday())+last)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, nil)
	}
	for d := 1; d <= last; d++ {
		t := time.Date(year, month, d, 0, 0, 0, 0, loc)
		days = append(days, &t)
	}
	return days
}

// ShiftMonth moves (year, month) by delta months.
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

// WeekCount is the number of logged days per kind in the week starting Start.
type WeekCount struct {
	Start  time.Time
	Counts map[Kind]int
}

// Weekly buckets sessions into the n Sunday-started weeks ending with the week
// containing now, oldest first.
func (s *Store) Weekly(now time.Time, n int) []WeekCount {
	now = now.In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	current := today.AddDate(0, 0, -int(today.Weekday()))

	weeks := make([]WeekCount, n)
	for i := range weeks {
		weeks[i] = WeekCount{
			Start:  current.AddDate(0, 0, -7*(n-1-i)),
			Counts: make(map[Kind]int),
		}
	}
	index := make(map[string]int, n)
	for i, w := range weeks {
		index[w.Start.Format("2006-01-02")] = i
	}
	for _, sess := range s.rec.History {
		d := sess.Date.In(s.loc)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
		start := day.AddDate(0, 0, -int(day.Weekday()))
		if i, ok := index[start.Format("2006-01-02")]; ok {
			weeks[i].Counts[sess.Workout]++
		}
	}
	return weeks
}
