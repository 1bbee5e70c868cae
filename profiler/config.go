package profiler

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/perfwrap/profile"
)

// Flags holds CLI flag names for runner configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	PID     string
	Perf    string
	Journal string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
		PID:   PIDPlaceholder,
		Perf:  "perf",
	}
}

// Config holds CLI flag values for runner configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRunner] to create a [Runner].
type Config struct {
	Flags Flags

	// PID is passed to perf's -p flag.
	PID string
	// Perf is the counter tool the profiler is asked to run.
	Perf string
	// Journal is the path of the append-mode journal (empty = disabled).
	Journal string
}

// NewConfig creates a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		PID:     "pid",
		Perf:    "perf",
		Journal: "journal",
	}

	return f.NewConfig()
}

// RegisterFlags adds runner flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.PID, c.Flags.PID, PIDPlaceholder,
		fmt.Sprintf("value for perf -p; %s is substituted by the profiler launcher", PIDPlaceholder))
	flags.StringVar(&c.Perf, c.Flags.Perf, "perf",
		"counter tool the profiler runs")
	flags.StringVar(&c.Journal, c.Flags.Journal, "",
		"append attempted runs and raw counter lines to this file")
}

// RegisterCompletions registers shell completions for runner flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.PID,
		cobra.FixedCompletions([]string{PIDPlaceholder}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.PID, err)
	}

	return nil
}

// NewRunner validates the configuration, opens the journal if one is set, and
// creates a [Runner]. Call [Runner.Close] when the run is complete.
func (c *Config) NewRunner(exec Executor, p profile.Profile, logger *slog.Logger) (*Runner, error) {
	err := ValidatePID(c.PID)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithPID(c.PID),
		WithPerf(c.Perf),
	}

	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}

	if c.Journal != "" {
		j, err := OpenJournal(c.Journal)
		if err != nil {
			return nil, err
		}

		opts = append(opts, WithJournal(j))
	}

	return NewRunner(exec, p, opts...), nil
}
