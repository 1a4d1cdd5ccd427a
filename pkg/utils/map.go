package utils

// CopyMap returns a shallow copy of m. A nil map yields an empty map.
func CopyMap[M ~map[K]V, K comparable, V any](m M) M {
	result := make(M, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
