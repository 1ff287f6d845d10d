package match

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// SplitLines splits s on any line terminator.
func SplitLines(s string) []string {
	return lineBreak.Split(s, -1)
}

// Clean trims every line of s, drops empty lines, and rejoins with "\n".
func Clean(s string) string {
	lines := SplitLines(s)
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
