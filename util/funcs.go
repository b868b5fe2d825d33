package util

func MapSlice[A, B any](slice []A, f func(A) B) []B {
	mapped := make([]B, len(slice))
	for i, elem := range slice {
		mapped[i] = f(elem)
	}
	return mapped
}

// MapSliceErr is MapSlice for a fallible f.
// It stops at the first error.
func MapSliceErr[A, B any](slice []A, f func(A) (B, error)) ([]B, error) {
	mapped := make([]B, len(slice))
	for i, elem := range slice {
		b, err := f(elem)
		if err != nil {
			return nil, err
		}
		mapped[i] = b
	}
	return mapped, nil
}
