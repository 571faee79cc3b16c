// Package rewards prices the shop in stars. One gold star is worth three
// points and one silver star one point.
package rewards

import (
	"errors"
	"fmt"

	"github.com/sadopc/liftlog/internal/history"
)

const (
	GoldPoints   = 3
	SilverPoints = 1
)

var ErrInsufficientPoints = errors.New("not enough points")

// Reward is one item in the shop.
type Reward struct {
	ID          string
	Name        string
	Cost        int
	Description string
}

// Catalog is the fixed shop, cheapest first.
var Catalog = []Reward{
	{ID: "fancy-coffee", Name: "Fancy Coffee", Cost: 3, Description: "The good stuff, extra shot"},
	{ID: "sweet-treat", Name: "Sweet Treat", Cost: 5, Description: "Dessert, no guilt"},
	{ID: "lazy-morning", Name: "Lazy Morning", Cost: 9, Description: "Sleep in, skip the alarm"},
	{ID: "takeout-night", Name: "Takeout Night", Cost: 12, Description: "Nobody cooks tonight"},
	{ID: "new-playlist", Name: "New Gym Playlist", Cost: 15, Description: "Buy that album you keep streaming"},
	{ID: "massage", Name: "Massage", Cost: 30, Description: "Book a sports massage"},
	{ID: "new-gear", Name: "New Gear", Cost: 45, Description: "Shoes, shirt or a lifting belt"},
}

// Find looks up a reward by ID.
func Find(id string) (Reward, bool) {
	for _, r := range Catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// Points converts a ledger to points.
func Points(s history.Stars) int {
	return s.Gold*GoldPoints + s.Silver*SilverPoints
}

// Affordable reports whether the ledger covers the reward.
func Affordable(s history.Stars, r Reward) bool {
	return Points(s) >= r.Cost
}

// Purchase deducts the reward cost and returns the ledger rebuilt from the
// remaining points, as many gold as possible. The input is returned unchanged
// with ErrInsufficientPoints when it does not cover the cost.
func Purchase(s history.Stars, r Reward) (history.Stars, error) {
	points := Points(s)
	if r.Cost < 0 {
		return s, fmt.Errorf("purchase %s: negative cost %d", r.ID, r.Cost)
	}
	if points < r.Cost {
		return s, fmt.Errorf("purchase %s (cost %d, have %d): %w", r.ID, r.Cost, points, ErrInsufficientPoints)
	}
	return FromPoints(points - r.Cost), nil
}

// FromPoints is the canonical ledger for a point total.
func FromPoints(points int) history.Stars {
	if points < 0 {
		points = 0
	}
	gold := points / GoldPoints
	return history.Stars{Gold: gold, Silver: points - gold*GoldPoints}
}
