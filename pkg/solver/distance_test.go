package solver

import "testing"

func TestDistanceReachable(t *testing.T) {
	tests := []struct {
		d    Distance
		want bool
	}{
		{0, true},
		{1, true},
		{81, true},
		{DistanceUnknown, false},
		{DistanceUnreachable, false},
	}

	for _, tt := range tests {
		if got := tt.d.Reachable(); got != tt.want {
			t.Errorf("%v.Reachable = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestDistanceLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Distance
		want bool
	}{
		{name: "Closer", a: 0, b: 1, want: true},
		{name: "Farther", a: 3, b: 2, want: false},
		{name: "Equal", a: 4, b: 4, want: false},
		{name: "FiniteBeatsUnreachable", a: 100, b: DistanceUnreachable, want: true},
		{name: "UnreachableNeverBeatsFinite", a: DistanceUnreachable, b: 100, want: false},
		{name: "SentinelsTie", a: DistanceUnreachable, b: DistanceUnknown, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceString(t *testing.T) {
	tests := []struct {
		d    Distance
		want string
	}{
		{0, "0"},
		{42, "42"},
		{DistanceUnreachable, "unreachable"},
		{DistanceUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		from, to Distance
		want     MoveClass
	}{
		{name: "TowardSolution", from: 5, to: 4, want: MovePositive},
		{name: "AwayFromSolution", from: 5, to: 6, want: MoveNegative},
		{name: "Sideways", from: 5, to: 5, want: MoveNeutral},
		{name: "IntoSolution", from: 1, to: 0, want: MovePositive},
		{name: "IntoUnreachable", from: 5, to: DistanceUnreachable, want: MoveNegative},
		{name: "OutOfUnreachable", from: DistanceUnreachable, to: 5, want: MovePositive},
		{name: "BetweenUnreachable", from: DistanceUnreachable, to: DistanceUnreachable, want: MoveNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.from, tt.to); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestMoveClassString(t *testing.T) {
	tests := []struct {
		c    MoveClass
		want string
	}{
		{MovePositive, "positive"},
		{MoveNeutral, "neutral"},
		{MoveNegative, "negative"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}
