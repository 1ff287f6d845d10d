package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/jonwraymond/doctest/config"
	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/host/js"
	"github.com/jonwraymond/doctest/match"
	"github.com/jonwraymond/doctest/parse"
	"github.com/jonwraymond/doctest/report"
	"github.com/jonwraymond/doctest/runner"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the examples found in FILE...",
		ArgsUsage: "FILE...",
		Flags:     runFlags,
		Action:    runAction,
	}
}

func runAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("no input files")
	}
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	logger, err := setupLogging(cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}
	opts, err := parseOptions(cfg)
	if err != nil {
		return err
	}

	examples, err := parse.LoadFiles(c.Context, c.Args().Slice(), opts)
	if err != nil {
		return err
	}
	logger.Debug("Loaded documents", "files", c.NArg(), "examples", len(examples))

	reg := prometheus.NewRegistry()
	reporter := report.Multi{
		report.NewText(report.TextConfig{
			Out:     c.App.Writer,
			Verbose: cfg.Verbose,
			Color:   useColor(cfg.Color, c.App.Writer),
		}),
		report.NewMetrics(reg),
	}

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	session, err := runExamples(c.Context, cfg, examples, reporter, c.App.ErrWriter, logger)
	if err != nil {
		return err
	}
	return sessionError(session.Summary())
}

// runExamples runs examples in a fresh JavaScript host.
func runExamples(ctx context.Context, cfg *config.Config, examples []*example.Example, reporter report.Reporter, console io.Writer, logger log.Logger) (*runner.Session, error) {
	h, err := js.New(js.Config{
		Mode:       js.Mode(cfg.Mode),
		EchoResult: cfg.EchoResult,
		Log:        logger,
	})
	if err != nil {
		return nil, err
	}
	defer h.Close()

	r, err := runner.New(runner.Config{
		Host:           h,
		Matcher:        match.New(match.Options{StripANSI: cfg.StripANSI, NoTable: cfg.NoTable}),
		Reporter:       reporter,
		DefaultTimeout: cfg.Timeout,
		PollInterval:   cfg.PollInterval,
		Console:        console,
		Log:            logger,
	})
	if err != nil {
		return nil, err
	}
	if err := r.Add(examples...); err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// sessionError returns a FailureError unless every example passed.
func sessionError(s *report.Summary) error {
	switch {
	case s.OK():
		return nil
	case s.Aborted():
		return &FailureError{Message: fmt.Sprintf("aborted: %s", s.AbortMessage)}
	default:
		return &FailureError{Message: fmt.Sprintf("%d of %d examples failed", s.Failed+s.TimedOut, s.Total)}
	}
}

// serveMetrics exposes reg on addr until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	logger.Info("Serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
