package parse

import (
	"github.com/jonwraymond/doctest/example"
)

// Block is one example as found in a document, before it becomes an
// [example.Example].
type Block struct {
	// Code is the executable text.
	Code string

	// Expected is the expected output with markers removed.
	Expected string

	// RawCode is the code exactly as it appeared, markers included.
	RawCode string

	// RawExpected is the expectation exactly as it appeared.
	RawExpected string

	// Line is the 1-based line where the block starts.
	Line int

	// Section is the enclosing section name, if sections were split.
	Section string
}

// Example converts the block to an example attributed to source.
func (b Block) Example(source string) *example.Example {
	return example.New(b.Code, b.Expected,
		example.WithSource(source, b.Line),
		example.WithSection(b.Section),
		example.WithRaw(b.RawCode, b.RawExpected),
	)
}

// Examples converts blocks to examples attributed to source.
func Examples(blocks []Block, source string) []*example.Example {
	out := make([]*example.Example, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Example(source))
	}
	return out
}
