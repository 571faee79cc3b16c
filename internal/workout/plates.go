package workout

import (
	"fmt"
	"math"
	"strings"
)

var (
	platesLb = []float64{45, 35, 25, 10, 5, 2.5}
	platesKg = []float64{25, 20, 15, 10, 5, 2.5, 1.25}
)

// PlateLoad is what goes on each side of the bar for a target weight.
type PlateLoad struct {
	Bar       float64
	PerSide   []float64
	Remainder float64 // weight that could not be made with available plates
}

// Plates computes a greedy per-side load for total on a bar of the given
// weight. unit is "lb" or "kg".
func Plates(total, bar float64, unit string) PlateLoad {
	load := PlateLoad{Bar: bar}
	if total <= bar {
		return load
	}
	avail := platesLb
	if unit == "kg" {
		avail = platesKg
	}
	side := (total - bar) / 2
	for _, p := range avail {
		for side+1e-9 >= p {
			load.PerSide = append(load.PerSide, p)
			side -= p
		}
	}
	load.Remainder = math.Round(side*2*100) / 100
	return load
}

// String renders the load like "45 + 10 + 2.5 per side".
func (l PlateLoad) String() string {
	if len(l.PerSide) == 0 {
		return "empty bar"
	}
	parts := make([]string, len(l.PerSide))
	for i, p := range l.PerSide {
		parts[i] = FormatWeight(p)
	}
	s := strings.Join(parts, " + ") + " per side"
	if l.Remainder > 0 {
		s += fmt.Sprintf(" (%s short)", FormatWeight(l.Remainder))
	}
	return s
}
