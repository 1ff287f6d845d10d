package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/match"
)

// TextConfig configures a Text reporter.
type TextConfig struct {
	// Out receives the report. Defaults to os.Stdout.
	Out io.Writer

	// Verbose also reports passing examples.
	Verbose bool

	// Color styles labels and the summary table with ANSI colors.
	Color bool

	// HideConsole omits captured console lines from failure reports.
	HideConsole bool
}

// Text reports verdicts as readable text.
type Text struct {
	mu    sync.Mutex
	cfg   TextConfig
	title cases.Caser

	pass, fail, abort, muted lipgloss.Style
}

// NewText creates a Text reporter.
func NewText(cfg TextConfig) *Text {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	t := &Text{
		cfg:   cfg,
		title: cases.Title(language.English),
		pass:  lipgloss.NewStyle(),
		fail:  lipgloss.NewStyle(),
		abort: lipgloss.NewStyle(),
		muted: lipgloss.NewStyle(),
	}
	if cfg.Color {
		t.pass = t.pass.Bold(true).Foreground(lipgloss.Color("2"))
		t.fail = t.fail.Bold(true).Foreground(lipgloss.Color("1"))
		t.abort = t.abort.Bold(true).Foreground(lipgloss.Color("3"))
		t.muted = t.muted.Foreground(lipgloss.Color("8"))
	}
	return t
}

func (t *Text) printf(format string, args ...any) {
	fmt.Fprintf(t.cfg.Out, format, args...)
}

// OnSuccess implements Reporter. Passes are shown only when verbose; a
// pass against a wildcard expectation also shows what was matched.
func (t *Text) OnSuccess(ex *example.Example, actual string) {
	if !t.cfg.Verbose {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.printf("%s %s %s\n", t.pass.Render("PASS"), ex.Label(), t.muted.Render(ex.Summary()))
	if ex.HasWildcards() {
		t.printf("  Got:\n%s\n", indent(actual))
	}
}

// OnFailure implements Reporter.
func (t *Text) OnFailure(ex *example.Example, actual string, tbl *match.Table) {
	t.mu.Lock()
	defer t.mu.Unlock()

	label := "FAIL"
	if ex.Status == example.StatusTimedOut {
		label = "TIMEOUT"
	}
	t.printf("%s %s %s\n", t.fail.Render(label), ex.Label(), t.muted.Render(ex.Summary()))
	t.printf("  Code:\n%s\n", indent(ex.Code))
	t.printf("  Expected:\n%s\n", indent(ex.Expected))
	t.printf("  Got:\n%s\n", indent(actual))
	if tbl != nil {
		t.printf("%s\n", indent(strings.TrimRight(tbl.String(), "\n")))
	}
	if console := ex.ConsoleOutput(); console != "" && !t.cfg.HideConsole {
		t.printf("  Console:\n%s\n", indent(console))
	}
}

// OnAbort implements Reporter.
func (t *Text) OnAbort(ex *example.Example, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.printf("%s %s: %s\n", t.abort.Render("ABORT"), ex.Label(), message)
}

// OnFinish implements Reporter. It prints a summary table.
func (t *Text) OnFinish(s *Summary) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tw := table.NewWriter()
	tw.SetOutputMirror(t.cfg.Out)
	tw.SetTitle("Summary")
	tw.AppendHeader(table.Row{"Status", "Examples"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Examples", Align: text.AlignRight},
	})
	for _, st := range []example.Status{
		example.StatusPassed,
		example.StatusFailed,
		example.StatusTimedOut,
		example.StatusSkipped,
	} {
		tw.AppendRow(table.Row{t.title.String(st.String()), countOf(s, st)})
	}
	tw.AppendFooter(table.Row{"Total", s.Total})

	switch {
	case !t.cfg.Color:
		tw.SetStyle(table.StyleLight)
	case s.OK():
		tw.SetStyle(table.StyleColoredBlackOnGreenWhite)
	default:
		tw.SetStyle(table.StyleColoredBlackOnRedWhite)
	}
	tw.Render()

	switch {
	case s.Canceled:
		t.printf("%s (canceled after %s)\n", t.fail.Render("INCOMPLETE"), s.Duration.Round(1e6))
	case s.Aborted():
		t.printf("%s (aborted: %s)\n", t.abort.Render("ABORTED"), s.AbortMessage)
	case s.OK():
		t.printf("%s (%d examples in %s)\n", t.pass.Render("OK"), s.Total, s.Duration.Round(1e6))
	default:
		t.printf("%s (%d of %d failed)\n", t.fail.Render("FAILED"), s.Failed+s.TimedOut, s.Total)
	}
}

func countOf(s *Summary, st example.Status) int {
	switch st {
	case example.StatusPassed:
		return s.Passed
	case example.StatusFailed:
		return s.Failed
	case example.StatusTimedOut:
		return s.TimedOut
	case example.StatusSkipped:
		return s.Skipped
	}
	return 0
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
