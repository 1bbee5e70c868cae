// Command perfwrap runs one or more profilers against one or more modules and
// summarizes the hardware counters they report.
//
// Each profiler is an executable that launches a module and attaches perf to
// it. For every profiler and module, perfwrap runs
//
//	<profiler> <module> perf stat -p PID -x, -e <events>
//
// and sums the counters perf writes to standard error. The summary is printed
// as a markdown table with one row per profiler.
//
// # Usage
//
//	perfwrap [flags] <profiler>... -- <module>...
//
// # Flags
//
//	--counter-profile NAME   secondary events: cache (default) or l1d
//	--profiles-file FILE     YAML file defining additional counter profiles
//	--event-modifier MOD     perf modifier on reported counter names (default u)
//	--pid PID                value for perf -p (default: literal PID)
//	--perf PATH              counter tool the profiler runs (default perf)
//	--journal FILE           append attempted runs and raw counter lines to FILE
//	--log-level LEVEL        error, warn, info, or debug
//	--log-format FORMAT      json, logfmt, text, or auto
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/perfwrap/log"
	"go.jacobcolvin.com/perfwrap/profile"
	"go.jacobcolvin.com/perfwrap/profiler"
	"go.jacobcolvin.com/perfwrap/report"
	"go.jacobcolvin.com/perfwrap/version"
)

const usageText = "Usage:\nperfwrap <profilers> -- <modules>\n"

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, profiler.ExecExecutor{}))
}

// run executes the command line args and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, exec profiler.Executor) int {
	rootCmd := newRootCommand(stdout, stderr, exec)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, errUsage) {
		fmt.Fprint(stdout, usageText)

		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	return 0
}

func newRootCommand(stdout, stderr io.Writer, exec profiler.Executor) *cobra.Command {
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()
	runCfg := profiler.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "perfwrap [flags] <profiler>... -- <module>...",
		Short: "Summarize hardware counters across profilers and modules",
		Long: `perfwrap runs every profiler against every module, collects the counters
perf reports on standard error, and prints a markdown table of cycles,
instructions, and miss ratios per profiler.`,
		Version: version.String(),
		Args: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			if dash < 1 || len(args)-dash < 1 {
				return errUsage
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logCfg.NewLogger(stderr)
			if err != nil {
				return err
			}

			p, err := profileCfg.NewProfile()
			if err != nil {
				return err
			}

			dash := cmd.ArgsLenAtDash()

			return summarize(cmd.Context(), stdout, logger, runCfg, exec, p, args[:dash], args[dash:])
		},
	}

	flags := rootCmd.Flags()
	logCfg.RegisterFlags(flags)
	profileCfg.RegisterFlags(flags)
	runCfg.RegisterFlags(flags)

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		profileCfg.RegisterCompletions,
		runCfg.RegisterCompletions,
	} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	return rootCmd
}

// summarize runs every profiler against every module and writes the report
// to stdout. The journal, if configured, is closed before returning.
func summarize(
	ctx context.Context,
	stdout io.Writer,
	logger *slog.Logger,
	cfg *profiler.Config,
	exec profiler.Executor,
	p profile.Profile,
	profilers, modules []string,
) (err error) {
	runner, err := cfg.NewRunner(exec, p, logger)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, runner.Close())
	}()

	logger.Debug("starting runs",
		slog.String("counter_profile", p.Name),
		slog.String("events", p.EventList()),
		slog.Any("profilers", profilers),
		slog.Any("modules", modules),
	)

	table, err := runner.Run(ctx, profilers, modules)
	if err != nil {
		return err
	}

	out, err := report.Render(table, p)
	if err != nil {
		return err
	}

	_, err = io.WriteString(stdout, out)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	logger.Info("runs complete",
		slog.Int("profilers", len(profilers)),
		slog.Int("modules", len(modules)),
	)

	return nil
}
