package slices

import (
	"slices"
)

// ContainsString checks if a []string slice contains a query string
func ContainsString(strings []string, query string) bool {
	return slices.Contains(strings, query)
}
