package solver

import "time"

// Stats summarizes a built graph. Histogram buckets states by their
// distance to solution; index i holds the number of states exactly i
// moves away, so Histogram[0] equals Solutions. Unreachable states are
// counted separately and appear in no bucket.
type Stats struct {
	States      int
	Edges       int
	Solutions   int
	Unreachable int

	// MaxToSolution is the largest finite distance to a solution, or
	// DistanceUnreachable when no state reaches one. Deepest is the
	// lowest ID at that distance, the hardest reachable position;
	// meaningless when MaxToSolution is unreachable.
	MaxToSolution Distance
	Deepest       StateID
	// MaxFromStart is the eccentricity of the start state: the BFS
	// depth of the exploration.
	MaxFromStart Distance

	Histogram []int

	ExploreTime   time.Duration
	PropagateTime time.Duration
}

// collectStats derives summary figures from finished states.
func collectStats(states []*State) Stats {
	s := Stats{
		States:        len(states),
		MaxToSolution: DistanceUnreachable,
		MaxFromStart:  DistanceUnknown,
	}
	for _, st := range states {
		s.Edges += len(st.Edges)
		if st.Solved {
			s.Solutions++
		}
		switch {
		case st.ToSolution.Reachable():
			if !s.MaxToSolution.Reachable() || s.MaxToSolution < st.ToSolution {
				s.MaxToSolution = st.ToSolution
				s.Deepest = st.ID
			}
		default:
			s.Unreachable++
		}
		if st.FromStart.Reachable() && (!s.MaxFromStart.Reachable() || s.MaxFromStart < st.FromStart) {
			s.MaxFromStart = st.FromStart
		}
	}
	if s.MaxToSolution.Reachable() {
		s.Histogram = make([]int, int(s.MaxToSolution)+1)
		for _, st := range states {
			if st.ToSolution.Reachable() {
				s.Histogram[st.ToSolution]++
			}
		}
	}
	return s
}
