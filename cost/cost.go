// Package cost provides the cost functions charged by the distance engine
// for split and merge events.
//
// A Func scores one event from two non-negative member counts. For a split
// the counts are the members leaving for the current group and the members
// staying behind; for a merge they are the members being absorbed and the
// members already absorbed. Max is the reference function for both.
package cost

// Func scores one split or merge event. The engine assumes determinism;
// commutativity is assumed for the reference functions but not enforced.
type Func func(a, b int) float64

// Max returns the larger of the two counts.
func Max(a, b int) float64 {
	if a > b {
		return float64(a)
	}
	return float64(b)
}

// Min returns the smaller of the two counts.
func Min(a, b int) float64 {
	if a < b {
		return float64(a)
	}
	return float64(b)
}

// Sum returns the total of the two counts.
func Sum(a, b int) float64 {
	return float64(a + b)
}

// Constant returns a Func charging a fixed cost per event, regardless of the
// counts involved.
func Constant(c float64) Func {
	return func(int, int) float64 { return c }
}
