package verifier

import "sort"

// sortedKeys returns m's keys in ascending order, so iteration over compiler
// output (a map of maps) is deterministic and reproducible across runs.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
