package workout

import (
	"regexp"
	"strconv"
)

var rangeRe = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\d+)\s*$`)

// ParseRepRange splits "low-high". Sentinels like "AMRAP" or "failure" report ok=false.
func ParseRepRange(r string) (low, high int, ok bool) {
	m := rangeRe.FindStringSubmatch(r)
	if m == nil {
		return 0, 0, false
	}
	low, _ = strconv.Atoi(m[1])
	high, _ = strconv.Atoi(m[2])
	if low > high {
		low, high = high, low
	}
	return low, high, true
}

// RepFit says where a rep count falls against the target range.
type RepFit int

const (
	RepsUnknown RepFit = iota // no numeric range
	RepsBelow
	RepsInRange
	RepsAbove
)

func FitReps(reps int, repRange string) RepFit {
	low, high, ok := ParseRepRange(repRange)
	if !ok {
		return RepsUnknown
	}
	switch {
	case reps < low:
		return RepsBelow
	case reps <= high:
		return RepsInRange
	default:
		return RepsAbove
	}
}

// Tip returns the progression hint for a rep count, or "".
func Tip(reps int, repRange string) string {
	switch FitReps(reps, repRange) {
	case RepsAbove:
		return "Above the range: go up in weight next set"
	case RepsBelow:
		return "Below the range: consider dropping the weight"
	}
	return ""
}
