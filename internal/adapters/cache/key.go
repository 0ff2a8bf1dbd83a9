package cache

import "strings"

// NormalizeKey ensures consistent cache keys by collapsing whitespace and case.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
