// Package texttest provides helpers for building expected multi-line text in
// tests.
package texttest

import "strings"

// Lines joins the given strings with LF line endings and appends a trailing
// newline, matching line-oriented writer output.
//
// Example:
//
//	want := texttest.Lines(
//		"header",
//		"row 1",
//		"row 2",
//	) // -> "header\nrow 1\nrow 2\n"
func Lines(ss ...string) string {
	var sb strings.Builder
	for _, s := range ss {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	return sb.String()
}
