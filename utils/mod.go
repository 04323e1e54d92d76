package utils

// Filter returns a new slice holding the items for which keep is true.
func Filter[T any](slice []T, keep func(T) bool) []T {
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func Count[T any](slice []T, match func(T) bool) int {
	n := 0
	for _, v := range slice {
		if match(v) {
			n++
		}
	}
	return n
}
