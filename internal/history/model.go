package history

import (
	"fmt"
	"time"
)

// Kind identifies what was done on a day.
type Kind string

const (
	KindA       Kind = "A"
	KindB       Kind = "B"
	KindC       Kind = "C"
	KindRest    Kind = "rest"
	KindHotYoga Kind = "hotYoga"
	KindCustom  Kind = "custom"
)

var kindLabels = map[Kind]string{
	KindA:       "Workout A",
	KindB:       "Workout B",
	KindC:       "Workout C",
	KindRest:    "Rest Day",
	KindHotYoga: "Hot Yoga",
	KindCustom:  "Custom",
}

func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label is the display name for the kind.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// IsTemplate reports whether the kind is one of the catalog workouts.
func (k Kind) IsTemplate() bool {
	return k == KindA || k == KindB || k == KindC
}

// SetLog is one logged set. Timed sets carry a duration and zero weight/reps.
type SetLog struct {
	Exercise        string    `json:"exercise"`
	Set             int       `json:"set"`
	Weight          float64   `json:"weight"`
	Reps            int       `json:"reps"`
	DurationSeconds *float64  `json:"durationSeconds,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Duration returns the recorded duration, or 0 for rep-based sets.
func (s SetLog) Duration() time.Duration {
	if s.DurationSeconds == nil {
		return 0
	}
	return time.Duration(*s.DurationSeconds * float64(time.Second))
}

func (s SetLog) Timed() bool { return s.DurationSeconds != nil }

// Session is everything logged for one calendar day.
type Session struct {
	Workout          Kind      `json:"workout"`
	Date             time.Time `json:"date"`
	Exercises        []SetLog  `json:"exercises"`
	PreWorkoutCardio string    `json:"preWorkoutCardio,omitempty"`
	CustomPlan       string    `json:"customPlan,omitempty"`
}

// Stars is the reward ledger.
type Stars struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
}

func (s Stars) String() string {
	return fmt.Sprintf("%d gold, %d silver", s.Gold, s.Silver)
}

// StarValue is what one logged day of the given kind is worth.
func StarValue(k Kind) Stars {
	if k == KindRest {
		return Stars{Silver: 1}
	}
	return Stars{Gold: 1}
}

// adjust applies old→new for one day, clamped at zero.
func (s Stars) adjust(remove, add Stars) Stars {
	s.Gold = max(0, s.Gold-remove.Gold+add.Gold)
	s.Silver = max(0, s.Silver-remove.Silver+add.Silver)
	return s
}

// Redemption records one reward purchase.
type Redemption struct {
	ID       string    `json:"id"`
	RewardID string    `json:"rewardId"`
	Cost     int       `json:"cost"`
	At       time.Time `json:"at"`
}
