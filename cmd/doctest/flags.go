package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/jonwraymond/doctest/config"
	"github.com/jonwraymond/doctest/parse"
)

func prefixEnvVar(name string) []string {
	return []string{config.EnvPrefix + name}
}

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Value:   config.DefaultFile,
		EnvVars: prefixEnvVar("CONFIG"),
		Usage:   "Path to the YAML configuration file; ignored when missing",
	}
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		EnvVars: prefixEnvVar("FORMAT"),
		Usage:   "Document convention: lines, comments or auto (by extension)",
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		EnvVars: prefixEnvVar("TIMEOUT"),
		Usage:   "Default bound for waits without their own timeout",
	}
	PollIntervalFlag = &cli.DurationFlag{
		Name:    "poll-interval",
		EnvVars: prefixEnvVar("POLL_INTERVAL"),
		Usage:   "Delay between checks of a pending wait",
	}
	ModeFlag = &cli.StringFlag{
		Name:    "mode",
		EnvVars: prefixEnvVar("MODE"),
		Usage:   "Execution mode: shared (one global scope) or isolated (fresh scope per example)",
	}
	EchoFlag = &cli.BoolFlag{
		Name:    "echo",
		EnvVars: prefixEnvVar("ECHO_RESULT"),
		Usage:   "Print the completion value of each example",
	}
	StripANSIFlag = &cli.BoolFlag{
		Name:    "strip-ansi",
		EnvVars: prefixEnvVar("STRIP_ANSI"),
		Usage:   "Remove terminal escape sequences from output before matching",
	}
	SectionsFlag = &cli.BoolFlag{
		Name:    "sections",
		EnvVars: prefixEnvVar("SECTIONS"),
		Usage:   "Split comment-convention files at SECTION comments",
	}
	NoColorFlag = &cli.BoolFlag{
		Name:    "no-color",
		EnvVars: prefixEnvVar("NO_COLOR"),
		Usage:   "Disable colored output",
	}
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		EnvVars: prefixEnvVar("VERBOSE"),
		Aliases: []string{"v"},
		Usage:   "Show passing examples in detail",
	}
	LogLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		EnvVars: prefixEnvVar("LOG_LEVEL"),
		Usage:   "Log level: trace, debug, info, warn, error or crit",
	}
	NoTableFlag = &cli.BoolFlag{
		Name:    "no-table",
		EnvVars: prefixEnvVar("NO_TABLE"),
		Usage:   "Omit the line-by-line comparison table from failure reports",
	}
	MetricsAddrFlag = &cli.StringFlag{
		Name:    "metrics-addr",
		EnvVars: prefixEnvVar("METRICS_ADDR"),
		Usage:   "Serve Prometheus metrics on this address while running (e.g. ':7300')",
	}
)

var runFlags = []cli.Flag{
	ConfigFlag,
	FormatFlag,
	TimeoutFlag,
	PollIntervalFlag,
	ModeFlag,
	EchoFlag,
	StripANSIFlag,
	NoTableFlag,
	SectionsFlag,
	NoColorFlag,
	VerboseFlag,
	LogLevelFlag,
	MetricsAddrFlag,
}

// loadSettings applies flags, and the DOCTEST_* variables behind them, over
// the configuration file.
func loadSettings(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String(ConfigFlag.Name))
	if err != nil {
		return nil, err
	}

	if c.IsSet(FormatFlag.Name) {
		cfg.Format = c.String(FormatFlag.Name)
	}
	if c.IsSet(TimeoutFlag.Name) {
		cfg.Timeout = c.Duration(TimeoutFlag.Name)
	}
	if c.IsSet(PollIntervalFlag.Name) {
		cfg.PollInterval = c.Duration(PollIntervalFlag.Name)
	}
	if c.IsSet(ModeFlag.Name) {
		cfg.Mode = c.String(ModeFlag.Name)
	}
	if c.IsSet(EchoFlag.Name) {
		cfg.EchoResult = c.Bool(EchoFlag.Name)
	}
	if c.IsSet(StripANSIFlag.Name) {
		cfg.StripANSI = c.Bool(StripANSIFlag.Name)
	}
	if c.IsSet(NoTableFlag.Name) {
		cfg.NoTable = c.Bool(NoTableFlag.Name)
	}
	if c.IsSet(SectionsFlag.Name) {
		cfg.Sections = c.Bool(SectionsFlag.Name)
	}
	if c.Bool(NoColorFlag.Name) {
		cfg.Color = "never"
	}
	if c.IsSet(VerboseFlag.Name) {
		cfg.Verbose = c.Bool(VerboseFlag.Name)
	}
	if c.IsSet(LogLevelFlag.Name) {
		cfg.LogLevel = c.String(LogLevelFlag.Name)
	}
	if c.IsSet(MetricsAddrFlag.Name) {
		cfg.MetricsAddr = c.String(MetricsAddrFlag.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseOptions translates the document settings of cfg.
func parseOptions(cfg *config.Config) (parse.Options, error) {
	marker, err := cfg.MarkerRegexp()
	if err != nil {
		return parse.Options{}, err
	}
	opts := parse.Options{Marker: marker, Sections: cfg.Sections}
	switch cfg.Format {
	case "", "auto":
		opts.Format = parse.FormatAuto
	case "lines":
		opts.Format = parse.FormatLines
	case "comments":
		opts.Format = parse.FormatComments
	default:
		return parse.Options{}, fmt.Errorf("%w: unknown format %q", config.ErrInvalid, cfg.Format)
	}
	return opts, nil
}

// setupLogging installs a terminal handler on the root logger and returns it.
func setupLogging(cfg *config.Config, w io.Writer) (log.Logger, error) {
	lvl, err := log.LvlFromString(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", config.ErrInvalid, err)
	}
	h := log.NewTerminalHandlerWithLevel(w, lvl, useColor(cfg.Color, w))
	log.SetDefault(log.NewLogger(h))
	return log.Root(), nil
}

// useColor resolves a color setting against the destination writer.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
