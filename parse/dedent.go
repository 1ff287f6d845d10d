package parse

import "strings"

// Dedent removes the indentation shared by every non-blank line of text.
// Only spaces count as indentation. Leading and trailing blank lines are
// dropped.
func Dedent(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if len(line) < indent {
			lines[i] = strings.TrimLeft(line, " ")
			continue
		}
		lines[i] = line[indent:]
	}
	return strings.Join(lines, "\n")
}
