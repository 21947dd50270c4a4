package sort

// splitMerge sorts s over b by halving it down to single elements and merging
// the halves back through temp.
func splitMerge(s, temp []int, b Bounds) int {
	if b.Len() < 2 {
		return 0
	}
	mid := b.Lower + (b.Upper-b.Lower)/2
	left, right := Bounds{Lower: b.Lower, Upper: mid}, Bounds{Lower: mid + 1, Upper: b.Upper}
	moves := splitMerge(s, temp, left) + splitMerge(s, temp, right)
	if s[mid] <= s[mid+1] {
		return moves
	}
	mergeRuns(s, temp, left, right)
	copy(s[b.Lower:b.Upper+1], temp[b.Lower:b.Upper+1])

	return moves + b.Len()
}

// TopDownMergeSort sorts s in place with a classic recursive merge sort that
// starts from single elements, it returns the number of elements written by
// its merges. It is the baseline the natural merge sort is measured against.
func TopDownMergeSort(s []int) int {
	temp := make([]int, len(s))
	return splitMerge(s, temp, Bounds{Lower: 0, Upper: len(s) - 1})
}
