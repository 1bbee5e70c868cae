// Package profiler runs profiler executables against modules and collects the
// counters they report.
//
// A profiler is an executable that launches a module and attaches a counter
// tool to it. For every (profiler, module) pair, [Runner.Run] invokes
//
//	<profiler> <module> perf stat -p <pid> -x, -e <events>
//
// without a shell, waits for it to exit, and parses the child's standard
// error as `perf stat -x,` output. Invocations are strictly sequential, in
// profiler-major, module-minor order. The pid defaults to the literal "PID",
// which the profiler launcher substitutes with the pid of the process running
// the module.
//
// Typical usage creates a [Config], registers flags, then creates a [Runner]:
//
//	cfg := profiler.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//
//	runner, err := cfg.NewRunner(profiler.ExecExecutor{}, p)
//	defer runner.Close()
//
//	table, err := runner.Run(ctx, profilers, modules)
//
// When [Config.Journal] is set, every attempted pair and every raw line of
// counter output is appended to that file.
package profiler
