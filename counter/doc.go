// Package counter parses the machine-readable output of `perf stat -x,` and
// accumulates counter values per profiler.
//
// A [Sample] is one parsed line of counter output. [Stats] sums samples by
// counter name for a single profiler, and a [Table] maps each profiler to its
// [Stats] in the order the profilers were recorded:
//
//	stats := counter.Stats{}
//	for _, line := range lines {
//	    sample, ok := counter.ParseLine(line)
//	    if ok {
//	        stats.Add(sample)
//	    }
//	}
//
//	table := counter.NewTable()
//	table.Set("wasmtime", stats)
//
// Lines whose value field is not an integer (perf reports "<not counted>" or
// "<not supported>" there) still produce a [Sample] with a zero value, so a
// partially supported event set never aborts a long run.
package counter
