package render

import (
	"fmt"
	"strings"
)

// FlattenBullets converts a list field into the ordered sequence of leaf
// strings to emit as bullet lines. Items may themselves be sequences to
// represent grouped sub-points; nesting is flattened depth-first at any
// depth, so grouping is invisible in output ordering. Blank leaves are
// dropped.
func FlattenBullets(items []any) []string {
	var leaves []string
	appendLeaves(items, &leaves)
	return leaves
}

func appendLeaves(items []any, dest *[]string) {
	for _, item := range items {
		switch v := item.(type) {
		case []any:
			appendLeaves(v, dest)
		case string:
			if text := strings.TrimSpace(v); text != "" {
				*dest = append(*dest, text)
			}
		case nil:
			// skip
		default:
			*dest = append(*dest, fmt.Sprint(v))
		}
	}
}
