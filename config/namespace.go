package config

import "sort"

// Namespace is a flat mapping from variable name to value, as captured from
// one configuration source or accumulated across a chain. Values use plain Go
// types: bool, int64, float64, string, []any, and map[string]any.
type Namespace map[string]any

// Keys returns the variable names in the namespace, sorted.
func (n Namespace) Keys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
