package sort

import "fmt"

// Bounds is an inclusive [Lower, Upper] index range of a run within a buffer.
type Bounds struct {
	Lower int
	Upper int
}

// Len returns the number of elements covered by the bounds.
func (b Bounds) Len() int {
	return b.Upper - b.Lower + 1
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d]", b.Lower, b.Upper)
}

// RunQueue is a first-in-first-out list of run bounds, ordered by Lower.
type RunQueue struct {
	runs []Bounds
}

// NewRunQueue returns an empty queue with room for n runs.
func NewRunQueue(n int) *RunQueue {
	return &RunQueue{
		runs: make([]Bounds, 0, n),
	}
}

func (q *RunQueue) Len() int {
	return len(q.runs)
}

func (q *RunQueue) Push(b Bounds) {
	q.runs = append(q.runs, b)
}

// Pop removes and returns the head of the queue, it panics on an empty queue.
func (q *RunQueue) Pop() Bounds {
	b := q.runs[0]
	q.runs = q.runs[1:]
	return b
}

func (q *RunQueue) Front() Bounds {
	return q.runs[0]
}

// Runs returns a copy of the queued bounds in queue order.
func (q *RunQueue) Runs() []Bounds {
	l := make([]Bounds, len(q.runs))
	copy(l, q.runs)
	return l
}

// Partitions reports whether the queued runs cover [0, n-1] left to right
// without gaps or overlaps.
func (q *RunQueue) Partitions(n int) bool {
	next := 0
	for _, b := range q.runs {
		if b.Lower != next || b.Upper < b.Lower {
			return false
		}
		next = b.Upper + 1
	}
	return next == n
}
