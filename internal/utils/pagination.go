// Package utils holds tiny helpers with no domain knowledge.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def for anything strconv.Atoi
// rejects. Query-string paging parameters ("page", "page_size", "limit")
// flow through here so a garbled value degrades to the endpoint's default
// instead of an error.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
