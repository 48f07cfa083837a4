package calculator

// LastCheckpoint returns the greatest index c < i with isCheckpoint(c), or -1.
func LastCheckpoint(i int, isCheckpoint func(int) bool) int {
	for c := i - 1; c >= 0; c-- {
		if isCheckpoint(c) {
			return c
		}
	}
	return -1
}

// CheckpointDistance is the number of steps from i back to the most recent
// checkpoint before it. A virtual checkpoint sits at -1, so the result is
// always at least 1.
func CheckpointDistance(i int, isCheckpoint func(int) bool) int {
	return i - LastCheckpoint(i, isCheckpoint)
}

// CheckpointDistances recomputes the distance column for a ledger of length n
// in a single forward pass.
func CheckpointDistances(n int, isCheckpoint func(int) bool) []int {
	out := make([]int, n)
	last := -1
	for i := 0; i < n; i++ {
		out[i] = i - last
		if isCheckpoint(i) {
			last = i
		}
	}
	return out
}

// LongestRun returns the largest distance in counts, or 0 when empty.
func LongestRun(counts []int) int {
	longest := 0
	for _, c := range counts {
		if c > longest {
			longest = c
		}
	}
	return longest
}
