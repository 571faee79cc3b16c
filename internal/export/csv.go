package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/liftlog/internal/history"
)

// ToCSV writes one row per logged set, for spreadsheets. Days without sets
// get a single row so rest days still show up.
func ToCSV(sessions []history.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Date", "Workout", "Exercise", "Set", "Weight", "Reps", "Duration (s)"}); err != nil {
		return err
	}

	for _, s := range sessions {
		date := s.Date.Local().Format("2006-01-02")
		if len(s.Exercises) == 0 {
			if err := w.Write([]string{date, s.Workout.Label(), "", "", "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, set := range s.Exercises {
			dur := ""
			if set.Timed() {
				dur = strconv.FormatFloat(*set.DurationSeconds, 'f', 1, 64)
			}
			row := []string{
				date,
				s.Workout.Label(),
				set.Exercise,
				strconv.Itoa(set.Set),
				strconv.FormatFloat(set.Weight, 'f', -1, 64),
				strconv.Itoa(set.Reps),
				dur,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
