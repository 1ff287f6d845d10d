package parse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/doctest/example"
)

// Format selects the document convention.
type Format string

const (
	// FormatAuto picks a convention from the file extension.
	FormatAuto Format = ""

	// FormatLines is the line-marker convention.
	FormatLines Format = "lines"

	// FormatComments is the comment-marker convention.
	FormatComments Format = "comments"
)

// commentExtensions are the extensions read with the comment convention
// when the format is FormatAuto.
var commentExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// Options configures document loading.
type Options struct {
	// Format selects the convention. Defaults to FormatAuto.
	Format Format

	// Tokenizer finds comments for the comment convention.
	// Defaults to NewJSTokenizer().
	Tokenizer Tokenizer

	// Marker recognizes expectation comments. Defaults to DefaultMarker.
	Marker *regexp.Regexp

	// Sections splits comment-convention documents at section comments and
	// records the section name on each example.
	Sections bool
}

func (o *Options) applyDefaults() {
	if o.Tokenizer == nil {
		o.Tokenizer = NewJSTokenizer()
	}
	if o.Marker == nil {
		o.Marker = DefaultMarker
	}
}

// FormatFor returns the convention used for path under FormatAuto.
func FormatFor(path string) Format {
	if commentExtensions[strings.ToLower(filepath.Ext(path))] {
		return FormatComments
	}
	return FormatLines
}

// ParseText parses text in the given convention and attributes the examples
// to source.
func ParseText(text, source string, opts Options) ([]*example.Example, error) {
	opts.applyDefaults()
	format := opts.Format
	if format == FormatAuto {
		format = FormatFor(source)
	}

	switch format {
	case FormatLines:
		blocks, err := ParseLines(text)
		if err != nil {
			return nil, err
		}
		return Examples(blocks, source), nil
	case FormatComments:
		return parseCommentText(text, source, opts)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrParse, format)
	}
}

func parseCommentText(text, source string, opts Options) ([]*example.Example, error) {
	copts := CommentOptions{Marker: opts.Marker}
	if !opts.Sections {
		blocks, err := ParseComments(text, opts.Tokenizer, copts)
		if err != nil {
			return nil, err
		}
		return Examples(blocks, source), nil
	}

	var out []*example.Example
	for _, sec := range SplitSections(text, opts.Tokenizer) {
		blocks, err := ParseComments(sec.Body, opts.Tokenizer, copts)
		if err != nil {
			return nil, err
		}
		for _, b := range blocks {
			b.Section = sec.Header
			b.Line += lineAt(text, sec.Offset) - 1
			out = append(out, b.Example(source))
		}
	}
	return out, nil
}

// FromFile reads and parses one document.
func FromFile(path string, opts Options) ([]*example.Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	exs, err := ParseText(string(data), path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return exs, nil
}

// LoadFiles reads and parses documents concurrently. Examples are returned
// in argument order, and in document order within each file. The first
// failure cancels the remaining work.
func LoadFiles(ctx context.Context, paths []string, opts Options) ([]*example.Example, error) {
	results := make([][]*example.Example, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			exs, err := FromFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = exs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*example.Example
	for _, exs := range results {
		out = append(out, exs...)
	}
	return out, nil
}
