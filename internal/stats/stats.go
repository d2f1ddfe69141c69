// Package stats groups collections by enum-valued fields for the dashboard.
package stats

// CountBy counts items by the key function, returning a map that is total
// over domain: every domain value appears as a key, zero when absent from
// the data. Keys outside domain are still counted, so the sum of the values
// always equals len(items).
func CountBy[T any, K comparable](items []T, domain []K, key func(T) K) map[K]int {
	counts := make(map[K]int, len(domain))
	for _, k := range domain {
		counts[k] = 0
	}
	for _, item := range items {
		counts[key(item)]++
	}
	return counts
}
