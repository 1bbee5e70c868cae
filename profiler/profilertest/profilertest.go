// Package profilertest provides a scripted [profiler.Executor] for tests.
package profilertest

import (
	"context"
	"fmt"
	"sync"

	"go.jacobcolvin.com/perfwrap/profiler"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
}

// Executor returns canned results keyed by "<profiler> <module>", where the
// module is the first argument of the invocation.
type Executor struct {
	// Results maps "<profiler> <module>" to the result to return.
	Results map[string]profiler.Result
	// Errors maps "<profiler> <module>" to a launch error to return.
	Errors map[string]error

	calls []Call
	mu    sync.Mutex
}

// Execute implements [profiler.Executor]. Unscripted invocations fail as if
// the executable was not found.
func (e *Executor) Execute(_ context.Context, name string, args ...string) (profiler.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, Call{Name: name, Args: append([]string(nil), args...)})

	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}

	if err, ok := e.Errors[key]; ok {
		return profiler.Result{}, err
	}

	res, ok := e.Results[key]
	if !ok {
		return profiler.Result{}, fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}

	return res, nil
}

// Calls returns the recorded invocations in order.
func (e *Executor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Call(nil), e.calls...)
}

// Stderr builds a [profiler.Result] with exit status 0 and the given stderr.
func Stderr(s string) profiler.Result {
	return profiler.Result{Stderr: []byte(s)}
}
