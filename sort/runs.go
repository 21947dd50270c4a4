package sort

import (
	"github.com/golang/glog"
)

type direction uint8

const (
	undetermined direction = iota
	ascending
	descending
)

func (d direction) String() string {
	switch d {
	case ascending:
		return "ascending"
	case descending:
		return "descending"
	}
	return "undetermined"
}

// pairDirection classifies a pair of adjacent values, equal values have no direction.
func pairDirection(prev, cur int) direction {
	switch {
	case prev < cur:
		return ascending
	case prev > cur:
		return descending
	}
	return undetermined
}

// DetectRuns partitions s into maximal monotonic runs and returns their bounds
// in left to right order. Descending runs are reversed in place, so when
// DetectRuns returns every run of s is sorted ascending.
//
// The direction of a run is taken from its first pair of unequal values. A run
// opened after a split therefore gets its direction from the pair that follows
// the split point, not from the pair that caused it. Equal neighbours never end
// a run.
func DetectRuns(s []int) *RunQueue {
	q := NewRunQueue(0)
	switch len(s) {
	case 0:
		return q
	case 1:
		q.Push(Bounds{Lower: 0, Upper: 0})
		return q
	}

	run := Bounds{Lower: 0, Upper: 0}
	dir := undetermined
	for i := 1; i < len(s); i++ {
		d := pairDirection(s[i-1], s[i])
		if d == undetermined || d == dir {
			run.Upper = i
			continue
		}
		if dir == undetermined {
			dir = d
			run.Upper = i
			continue
		}
		closeRun(s, q, run, dir)
		run = Bounds{Lower: i, Upper: i}
		dir = undetermined
	}
	closeRun(s, q, run, dir)

	return q
}

func closeRun(s []int, q *RunQueue, run Bounds, dir direction) {
	if dir == descending {
		reverseBetween(s, run.Lower, run.Upper)
	}
	glog.V(6).Infof("run %s of %d elements, %s", run, run.Len(), dir)
	q.Push(run)
}

// reverseBetween reverses s[lower:upper+1] in place.
func reverseBetween(s []int, lower, upper int) {
	for lower < upper {
		s[lower], s[upper] = s[upper], s[lower]
		lower++
		upper--
	}
}
