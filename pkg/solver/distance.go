package solver

import (
	"math"
	"strconv"
)

// Distance counts moves from a state to the nearest solved state. Two
// negative sentinels cover states without a finite count: unknown means
// propagation has not assigned a value yet, unreachable means no path
// to any solved state exists. Unreachable is a valid terminal
// classification, not an error.
type Distance int

const (
	// DistanceUnknown marks a state whose distance has not been
	// computed. It never survives a completed Build.
	DistanceUnknown Distance = -1

	// DistanceUnreachable marks a state with no path to any solved
	// state.
	DistanceUnreachable Distance = -2
)

// Reachable reports whether the distance is a finite move count.
func (d Distance) Reachable() bool { return d >= 0 }

// rank maps the distance onto a total order in which both sentinels
// sort after every finite count.
func (d Distance) rank() int {
	if d >= 0 {
		return int(d)
	}
	return math.MaxInt
}

// Less reports whether d is strictly closer to a solution than other.
func (d Distance) Less(other Distance) bool { return d.rank() < other.rank() }

// String formats finite distances as numbers and sentinels by name.
func (d Distance) String() string {
	switch {
	case d >= 0:
		return strconv.Itoa(int(d))
	case d == DistanceUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// MoveClass grades a move by its effect on the distance to solution.
type MoveClass int

const (
	// MovePositive steps strictly closer to a solution.
	MovePositive MoveClass = iota
	// MoveNeutral keeps the distance unchanged.
	MoveNeutral
	// MoveNegative steps strictly away from a solution.
	MoveNegative
)

// String returns the lowercase class name.
func (c MoveClass) String() string {
	switch c {
	case MovePositive:
		return "positive"
	case MoveNeutral:
		return "neutral"
	default:
		return "negative"
	}
}

// Classify grades a move from a state at distance from to a state at
// distance to. Sentinel distances compare as infinitely far: stepping
// into an unreachable region is negative, and a move between two
// unreachable states is neutral.
func Classify(from, to Distance) MoveClass {
	switch {
	case to.rank() < from.rank():
		return MovePositive
	case to.rank() > from.rank():
		return MoveNegative
	default:
		return MoveNeutral
	}
}
