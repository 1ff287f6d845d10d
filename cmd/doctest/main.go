// Command doctest runs the examples embedded in documents and JavaScript
// source files and reports which of them produce their expected output.
//
// Usage:
//
//	doctest run [flags] FILE...
//	doctest serve-mcp
//
// Exit codes: 0 when every example passed, 1 when an example failed or the
// session was aborted, 2 on configuration or runtime errors.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "v0.1.0"

// Exit codes.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitRuntimeErr = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(runApp(ctx, os.Args, os.Stdout, os.Stderr))
}

// runApp runs the CLI and maps its error to an exit code.
func runApp(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	err := app.RunContext(ctx, args)
	code := exitCode(err)
	if code == ExitRuntimeErr {
		fmt.Fprintf(stderr, "doctest: %v\n", err)
	}
	return code
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "doctest"
	app.Usage = "Run the examples embedded in documents and source files"
	app.Version = Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Commands = []*cli.Command{
		runCommand(),
		serveMCPCommand(),
	}
	// Exit codes are decided by runApp.
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

// FailureError reports a session that completed but did not pass.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string {
	return e.Message
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var failure *FailureError
	if errors.As(err, &failure) {
		return ExitFailure
	}
	return ExitRuntimeErr
}
