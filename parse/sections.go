package parse

import (
	"regexp"
	"strings"
)

var (
	sectionComment = regexp.MustCompile(`^\s*=+\s*SECTION`)
	sectionPrefix  = regexp.MustCompile(`^\s*=+\s*SECTION\s*`)
)

// Section is a named part of a document.
type Section struct {
	// Header is the section name. It is empty for text before the first
	// section comment and for documents without sections.
	Header string

	// Body is the section text, excluding its header comment.
	Body string

	// Offset is the byte offset of Body within the document.
	Offset int
}

// SplitSections divides text at comments of the form "// == SECTION name".
// A document the tokenizer cannot read is returned as one section, leaving
// the error to be reported when the examples are parsed.
func SplitSections(text string, tok Tokenizer) []Section {
	if tok == nil {
		return []Section{{Body: text}}
	}
	comments, err := tok.Comments(text)
	if err != nil {
		return []Section{{Body: text}}
	}

	var sections []Section
	pos := 0
	for _, c := range comments {
		if !sectionComment.MatchString(c.Text) {
			continue
		}
		body := text[pos:c.Start]
		if len(sections) == 0 {
			if strings.TrimSpace(body) != "" {
				sections = append(sections, Section{Body: body})
			}
		} else {
			sections[len(sections)-1].Body = body
		}
		header := strings.TrimSpace(sectionPrefix.ReplaceAllString(c.Text, ""))
		sections = append(sections, Section{Header: header, Offset: c.End})
		pos = c.End
	}
	if len(sections) == 0 {
		return []Section{{Body: text}}
	}
	sections[len(sections)-1].Body = text[pos:]
	return sections
}
