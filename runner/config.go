package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jonwraymond/doctest/host"
	"github.com/jonwraymond/doctest/match"
	"github.com/jonwraymond/doctest/report"
)

// Defaults.
const (
	// DefaultTimeout bounds a wait that does not specify its own.
	DefaultTimeout = 5 * time.Second

	// DefaultPollInterval is how often a suspended example is checked.
	DefaultPollInterval = 100 * time.Millisecond

	// WaitMargin is added to a duration wait to form its deadline.
	WaitMargin = 10 * time.Millisecond
)

// Config holds the configuration for a Runner.
type Config struct {
	// Host evaluates example code.
	// Required.
	Host host.Host

	// Matcher judges output. Defaults to match.Default.
	Matcher match.Matcher

	// Reporter receives verdicts. Defaults to a text reporter on stdout.
	Reporter report.Reporter

	// DefaultTimeout bounds waits without their own timeout.
	// Defaults to DefaultTimeout.
	DefaultTimeout time.Duration

	// PollInterval is the delay between checks of a wait condition.
	// Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// Clock measures waits. Defaults to the wall clock.
	Clock clock.Clock

	// Console receives console output and stack traces from examples.
	// Defaults to os.Stderr.
	Console io.Writer

	// Log receives session events. Defaults to log.Root().
	Log log.Logger
}

// Validate checks that all required fields are set and durations are sane.
// Returns ErrConfiguration if not.
func (c *Config) Validate() error {
	var problems []string

	if c.Host == nil {
		problems = append(problems, "missing required field Host")
	}
	if c.DefaultTimeout < 0 {
		problems = append(problems, "DefaultTimeout is negative")
	}
	if c.PollInterval < 0 {
		problems = append(problems, "PollInterval is negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.Matcher == nil {
		c.Matcher = match.Default
	}
	if c.Reporter == nil {
		c.Reporter = report.NewText(report.TextConfig{Out: os.Stdout})
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultTimeout
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Console == nil {
		c.Console = os.Stderr
	}
	if c.Log == nil {
		c.Log = log.Root()
	}
}
