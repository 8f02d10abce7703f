package utils

// SplitRuns splits seq into maximal runs. The boundary function is called
// with the previous and current element and must return true exactly when
// the current element starts a new run.
func SplitRuns[T any](seq []T, boundary func(prev, cur T) bool) [][]T {
	if len(seq) == 0 {
		return nil
	}
	runs := [][]T{{seq[0]}}
	for i := 1; i < len(seq); i++ {
		if boundary(seq[i-1], seq[i]) {
			runs = append(runs, []T{seq[i]})
		} else {
			last := len(runs) - 1
			runs[last] = append(runs[last], seq[i])
		}
	}
	return runs
}

// FindEleInSlice takes a slice and looks for an element in it. If found it will
// return it's key, otherwise it will return -1 and a bool of false.
func FindEleInSlice(slice []string, val string) (int, bool) {
	for i, item := range slice {
		if item == val {
			return i, true
		}
	}
	return -1, false
}
