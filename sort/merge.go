package sort

import (
	"github.com/golang/glog"
)

// Merger owns the two equal length buffers of a natural merge sort. The buffer
// selected by the parity of the stage counter holds the current state, the
// other one receives the output of the next stage.
type Merger struct {
	buffers [2][]int
	stage   int
	moves   int
}

// NewMerger takes ownership of active as buffer 0 and allocates buffer 1.
// The caller must not touch active until the merge completes.
func NewMerger(active []int) *Merger {
	return &Merger{
		buffers: [2][]int{active, make([]int, len(active))},
	}
}

// Stage returns the number of completed merge stages.
func (m *Merger) Stage() int {
	return m.stage
}

// Moves returns the number of elements written to a destination buffer so far.
func (m *Merger) Moves() int {
	return m.moves
}

// Active returns the buffer holding the current state.
func (m *Merger) Active() []int {
	return m.buffers[m.stage%2]
}

// Merge runs stages until q holds at most one run and returns the buffer
// holding the sorted sequence. Runs in q must partition the active buffer
// and each of them must be sorted ascending.
func (m *Merger) Merge(q *RunQueue) []int {
	for q.Len() > 1 {
		m.Pass(q)
	}
	return m.Active()
}

// Pass performs a single stage: adjacent pairs of runs are merged into the
// alternate buffer, an odd run out is copied over unchanged, and the stage
// counter advances.
func (m *Merger) Pass(q *RunQueue) {
	if q.Len() < 2 {
		return
	}
	src, dst := m.buffers[m.stage%2], m.buffers[(m.stage+1)%2]
	l := q.Len()
	take := l / 2
	for i := 0; i < take; i++ {
		first := q.Pop()
		second := q.Pop()
		q.Push(mergeRuns(src, dst, first, second))
	}
	if l%2 != 0 {
		rest := q.Pop()
		copy(dst[rest.Lower:rest.Upper+1], src[rest.Lower:rest.Upper+1])
		q.Push(rest)
	}
	m.moves += len(dst)
	glog.V(5).Infof("merge stage %d: %d runs merged into %d", m.stage, l, q.Len())
	m.stage++
}

// mergeRuns merges the adjacent ascending runs first and second of src into
// dst over [first.Lower, second.Upper]. On equal values the element of first
// is emitted before the element of second.
func mergeRuns(src, dst []int, first, second Bounds) Bounds {
	i, j, k := first.Lower, second.Lower, first.Lower
	for i <= first.Upper && j <= second.Upper {
		if src[j] < src[i] {
			dst[k] = src[j]
			j++
		} else {
			dst[k] = src[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], src[i:first.Upper+1])
	copy(dst[k:], src[j:second.Upper+1])

	return Bounds{Lower: first.Lower, Upper: second.Upper}
}
