package match

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Section headers used in a Table.
const (
	HeaderMismatch         = "Details of mismatch:"
	HeaderTrailingGot      = "Trailing lines in got:"
	HeaderTrailingExpected = "Trailing expected line(s):"
)

// Row is one line of a mismatch table. A header row has only Header set.
type Row struct {
	Header   string
	Got      string
	Expected string
	Mismatch bool
}

// IsHeader reports whether the row is a section header.
func (r Row) IsHeader() bool {
	return r.Header != ""
}

// Table is a line-by-line comparison of got and expected output.
type Table struct {
	Rows []Row
}

// BuildTable compares cleaned output line by line. It returns nil when
// either side has at most one line, or when at most one line pair matches,
// since the breakdown would add nothing to the plain diff.
func BuildTable(got, expected string) (t *Table) {
	defer func() {
		if recover() != nil {
			t = nil
		}
	}()

	gotLines := strings.Split(got, "\n")
	wantLines := strings.Split(expected, "\n")
	if len(gotLines) <= 1 || len(wantLines) <= 1 {
		return nil
	}

	t = &Table{Rows: []Row{{Header: HeaderMismatch}}}
	matched := 0
	for i, line := range gotLines {
		if i >= len(wantLines) {
			if i == len(wantLines) {
				t.Rows = append(t.Rows, Row{Header: HeaderTrailingGot})
			}
			t.Rows = append(t.Rows, Row{Got: line, Mismatch: true})
			continue
		}
		ok := lineMatches(line, wantLines[i])
		if ok {
			matched++
		}
		t.Rows = append(t.Rows, Row{Got: line, Expected: wantLines[i], Mismatch: !ok})
	}
	if matched <= 1 {
		return nil
	}
	if len(wantLines) > len(gotLines) {
		t.Rows = append(t.Rows, Row{Header: HeaderTrailingExpected})
		for _, line := range wantLines[len(gotLines):] {
			t.Rows = append(t.Rows, Row{Expected: line, Mismatch: true})
		}
	}
	return t
}

func lineMatches(got, expected string) bool {
	p, err := Compile(expected)
	return err == nil && p.MatchString(got)
}

// Mismatches returns the number of rows flagged as mismatching.
func (t *Table) Mismatches() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, r := range t.Rows {
		if r.Mismatch {
			n++
		}
	}
	return n
}

// Render writes the table to w as aligned text.
func (t *Table) Render(w io.Writer) {
	if t == nil {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"", "GOT", "EXPECTED"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 1},
		{Number: 2, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Number: 3, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})
	for _, r := range t.Rows {
		if r.IsHeader() {
			tw.AppendSeparator()
			tw.AppendRow(table.Row{"", r.Header, r.Header}, table.RowConfig{AutoMerge: true})
			continue
		}
		mark := ""
		if r.Mismatch {
			mark = "!"
		}
		tw.AppendRow(table.Row{mark, r.Got, r.Expected})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

// String renders the table to a string.
func (t *Table) String() string {
	var b strings.Builder
	t.Render(&b)
	return b.String()
}
