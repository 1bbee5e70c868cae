// Package stringtest builds multi-line strings for test expectations.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"|p1|20|40|0.2|0.25|",
//		"|p2|10|20|0.2|0.25|",
//	) // -> "|p1|20|40|0.2|0.25|\n|p2|10|20|0.2|0.25|"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Input strips the leading newline and a trailing blank line from s and
// removes the indentation shared by all non-blank lines, so fixtures can be
// written as indented raw string literals.
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")

	lines := strings.Split(s, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false

			continue
		}

		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}
