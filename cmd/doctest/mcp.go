package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/urfave/cli/v2"

	"github.com/jonwraymond/doctest/config"
	"github.com/jonwraymond/doctest/parse"
	"github.com/jonwraymond/doctest/report"
)

// RunDoctestTool is the name of the MCP tool that runs a document.
const RunDoctestTool = "run_doctest"

func serveMCPCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve-mcp",
		Usage: "Serve the run_doctest tool over MCP on stdin/stdout",
		Flags: []cli.Flag{
			ConfigFlag,
			TimeoutFlag,
			PollIntervalFlag,
			ModeFlag,
			StripANSIFlag,
			NoTableFlag,
			SectionsFlag,
			LogLevelFlag,
		},
		Action: serveMCPAction,
	}
}

func serveMCPAction(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	// stdout carries the protocol.
	logger, err := setupLogging(cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}
	server := newMCPServer(cfg, logger)
	logger.Info("Serving MCP on stdio", "tool", RunDoctestTool)
	return server.Run(c.Context, &mcp.StdioTransport{})
}

// RunInput is the argument of the run_doctest tool.
type RunInput struct {
	Source   string `json:"source" jsonschema:"document text containing the examples"`
	Filename string `json:"filename,omitempty" jsonschema:"name used to label examples and to pick the convention from its extension"`
	Format   string `json:"format,omitempty" jsonschema:"document convention: lines, comments or auto"`
	Mode     string `json:"mode,omitempty" jsonschema:"execution mode: shared or isolated"`
}

// RunOutput is the result of the run_doctest tool.
type RunOutput struct {
	Session  string          `json:"session"`
	OK       bool            `json:"ok"`
	Total    int             `json:"total"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	TimedOut int             `json:"timed_out"`
	Skipped  int             `json:"skipped"`
	Aborted  string          `json:"aborted,omitempty"`
	Failures []FailureDetail `json:"failures,omitempty"`
}

// FailureDetail describes one example that did not pass.
type FailureDetail struct {
	Example  string `json:"example"`
	Status   string `json:"status"`
	Code     string `json:"code"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
	Console  string `json:"console,omitempty"`
	Table    string `json:"table,omitempty"`
}

type tools struct {
	cfg *config.Config
	log log.Logger
}

func newMCPServer(cfg *config.Config, logger log.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "doctest", Version: Version}, nil)
	t := &tools{cfg: cfg, log: logger}
	mcp.AddTool(server, &mcp.Tool{
		Name:        RunDoctestTool,
		Title:       "Run doctest examples",
		Description: "Runs the JavaScript examples embedded in a document and reports which ones produced their expected output.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, t.runDoctest)
	return server
}

func (t *tools) runDoctest(ctx context.Context, _ *mcp.CallToolRequest, in RunInput) (*mcp.CallToolResult, RunOutput, error) {
	cfg := *t.cfg
	if in.Format != "" {
		cfg.Format = in.Format
	}
	if in.Mode != "" {
		cfg.Mode = in.Mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, RunOutput{}, err
	}
	opts, err := parseOptions(&cfg)
	if err != nil {
		return nil, RunOutput{}, err
	}

	source := in.Filename
	if source == "" {
		source = "input"
	}
	examples, err := parse.ParseText(in.Source, source, opts)
	if err != nil {
		return nil, RunOutput{}, err
	}
	if len(examples) == 0 {
		return nil, RunOutput{}, fmt.Errorf("no examples found in %s", source)
	}

	rec := report.NewRecorder()
	if _, err := runExamples(ctx, &cfg, examples, rec, io.Discard, t.log); err != nil {
		return nil, RunOutput{}, err
	}
	return nil, summarize(rec), nil
}

// summarize converts recorded events into the tool result.
func summarize(rec *report.Recorder) RunOutput {
	s := rec.Summary()
	out := RunOutput{
		Session:  s.ID,
		OK:       s.OK(),
		Total:    s.Total,
		Passed:   s.Passed,
		Failed:   s.Failed,
		TimedOut: s.TimedOut,
		Skipped:  s.Skipped,
		Aborted:  s.AbortMessage,
	}
	for _, e := range rec.Events() {
		if e.Kind != report.EventFailure {
			continue
		}
		d := FailureDetail{
			Example:  e.Example.Label(),
			Status:   e.Example.Status.String(),
			Code:     e.Example.Code,
			Expected: e.Example.Expected,
			Got:      e.Actual,
			Console:  e.Example.ConsoleOutput(),
		}
		if e.Table != nil {
			d.Table = e.Table.String()
		}
		out.Failures = append(out.Failures, d)
	}
	return out
}
