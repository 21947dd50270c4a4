// Package sort implements a natural merge sort of integer sequences: the
// pre-existing monotonic runs of the input seed a bottom-up merge, so the
// number of merge stages depends on the number of runs rather than on the
// length of the input.
package sort

import (
	"github.com/golang/glog"
)

// Result describes the outcome of a natural merge sort.
type Result struct {
	// Sorted holds the input values in non-decreasing order.
	Sorted []int
	// Runs is the number of runs found by the run detector.
	Runs int
	// Stages is the number of merge stages it took to reduce the runs to one.
	Stages int
	// Moves is the number of elements written by the merge stages.
	Moves int
}

// NaturalMergeSort sorts a copy of s, s itself is left unmodified.
func NaturalMergeSort(s []int) *Result {
	active := make([]int, len(s))
	copy(active, s)

	q := DetectRuns(active)
	runs := q.Len()
	m := NewMerger(active)
	sorted := m.Merge(q)
	glog.V(5).Infof("sorted %d elements: %d runs, %d stages", len(s), runs, m.Stage())

	return &Result{
		Sorted: sorted,
		Runs:   runs,
		Stages: m.Stage(),
		Moves:  m.Moves(),
	}
}

// SortIntSlice returns the values of s in non-decreasing order.
func SortIntSlice(s []int) []int {
	return NaturalMergeSort(s).Sorted
}

// IsSorted reports whether s is in non-decreasing order.
func IsSorted(s []int) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
