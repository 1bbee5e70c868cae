package profiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.jacobcolvin.com/perfwrap/counter"
	"go.jacobcolvin.com/perfwrap/profile"
)

// PIDPlaceholder is substituted by profiler launchers with the pid of the
// process running the module.
const PIDPlaceholder = "PID"

var (
	// ErrSubprocess indicates a profiler could not be run, or failed without
	// reporting any counters.
	ErrSubprocess = errors.New("subprocess failed")
	// ErrInvalidPID indicates a pid that is neither [PIDPlaceholder] nor a
	// positive integer.
	ErrInvalidPID = errors.New("invalid pid")
)

// Runner invokes profilers against modules and accumulates their counters.
//
// Create instances with [NewRunner] or [Config.NewRunner].
type Runner struct {
	exec    Executor
	journal *Journal
	logger  *slog.Logger
	perf    string
	pid     string
	profile profile.Profile
}

// Option configures a [Runner].
type Option func(*Runner)

// WithJournal records every attempt and raw counter line to j. The [Runner]
// takes ownership of j and closes it in [Runner.Close].
func WithJournal(j *Journal) Option {
	return func(r *Runner) {
		r.journal = j
	}
}

// WithLogger sets the logger. The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithPID sets the value passed to perf's -p flag.
func WithPID(pid string) Option {
	return func(r *Runner) {
		r.pid = pid
	}
}

// WithPerf sets the counter tool executable the profiler is asked to run.
func WithPerf(perf string) Option {
	return func(r *Runner) {
		r.perf = perf
	}
}

// NewRunner creates a [Runner] that requests the events of p.
func NewRunner(exec Executor, p profile.Profile, opts ...Option) *Runner {
	r := &Runner{
		exec:    exec,
		logger:  slog.Default(),
		perf:    "perf",
		pid:     PIDPlaceholder,
		profile: p,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ValidatePID reports whether pid is [PIDPlaceholder] or a positive integer.
func ValidatePID(pid string) error {
	if pid == PIDPlaceholder {
		return nil
	}

	n, err := strconv.Atoi(pid)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: %q: want %s or a positive integer", ErrInvalidPID, pid, PIDPlaceholder)
	}

	return nil
}

// Args returns the arguments passed to profiler for module. The executable
// itself is profiler.
func (r *Runner) Args(module string) []string {
	return []string{
		module,
		r.perf, "stat",
		"-p", r.pid,
		"-x,",
		"-e", r.profile.EventList(),
	}
}

// Run invokes every profiler against every module, one at a time, and
// returns the accumulated counters per profiler.
//
// The first failure aborts the run. Errors name the profiler and module
// involved.
func (r *Runner) Run(ctx context.Context, profilers, modules []string) (*counter.Table, error) {
	table := counter.NewTable()

	for _, p := range profilers {
		stats := counter.Stats{}

		for _, m := range modules {
			err := r.runOne(ctx, p, m, stats)
			if err != nil {
				return nil, err
			}
		}

		table.Set(p, stats)

		r.logger.Debug("profiler complete",
			slog.String("profiler", p),
			slog.Int("modules", len(modules)),
			slog.Int("counters", len(stats)),
		)
	}

	return table, nil
}

func (r *Runner) runOne(ctx context.Context, p, m string, stats counter.Stats) error {
	args := r.Args(m)

	r.logger.Debug("running profiler",
		slog.String("profiler", p),
		slog.String("module", m),
		slog.String("args", strings.Join(args, " ")),
	)

	if r.journal != nil {
		err := r.journal.Attempt(p, m)
		if err != nil {
			return err
		}
	}

	res, err := r.exec.Execute(ctx, p, args...)
	if err != nil {
		return fmt.Errorf("%w: profiler %q, module %q: %w", ErrSubprocess, p, m, err)
	}

	var (
		samples  []counter.Sample
		lastLine string
	)

	err = counter.Scan(bytes.NewReader(res.Stderr), func(line string, sample counter.Sample, ok bool) error {
		if strings.TrimSpace(line) != "" {
			lastLine = line
		}

		if r.journal != nil {
			err := r.journal.Line(line)
			if err != nil {
				return err
			}
		}

		if !ok {
			r.logger.Debug("skipping non-counter line",
				slog.String("profiler", p),
				slog.String("module", m),
				slog.String("line", line),
			)

			return nil
		}

		if !sample.Counted {
			r.logger.Debug("counter value not available, counting as zero",
				slog.String("profiler", p),
				slog.String("module", m),
				slog.String("counter", sample.Name),
				slog.String("line", line),
			)
		}

		samples = append(samples, sample)

		return nil
	})
	if err != nil {
		return fmt.Errorf("profiler %q, module %q: %w", p, m, err)
	}

	if res.ExitCode != 0 {
		if len(samples) == 0 {
			// Launchers report their own failures on stdout.
			if lastLine == "" {
				lastLine = lastNonBlank(res.Stdout)
			}

			if lastLine == "" {
				lastLine = "no output"
			}

			return fmt.Errorf("%w: profiler %q, module %q: exit status %d with no counter output: %s",
				ErrSubprocess, p, m, res.ExitCode, lastLine)
		}

		r.logger.Warn("profiler exited with non-zero status",
			slog.String("profiler", p),
			slog.String("module", m),
			slog.Int("status", res.ExitCode),
		)
	}

	if len(samples) == 0 {
		r.logger.Warn("profiler reported no counters",
			slog.String("profiler", p),
			slog.String("module", m),
		)
	}

	stats.AddAll(samples)

	return nil
}

// lastNonBlank returns the last line of b that is not blank, trimmed.
func lastNonBlank(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")

	return strings.TrimSpace(lines[len(lines)-1])
}

// Close releases the journal, if any.
func (r *Runner) Close() error {
	if r.journal == nil {
		return nil
	}

	err := r.journal.Close()
	r.journal = nil

	return err
}
