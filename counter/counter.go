package counter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	valueField = 0
	nameField  = 2
)

// ErrMissingCounter indicates a counter required for reporting was never seen
// in the output collected for a profiler.
var ErrMissingCounter = errors.New("missing counter")

// Sample is a single counter reading parsed from one line of output.
type Sample struct {
	Name  string
	Value int64
	// Counted is false when the value field could not be parsed as an
	// integer, in which case Value is zero.
	Counted bool
}

// ParseLine parses one line of `perf stat -x,` output. Field 0 holds the value
// and field 2 the counter name.
//
// It returns false for lines that do not have the expected shape (fewer than
// three fields or an empty name). A non-integer value yields a [Sample] with
// Value zero and Counted false.
func ParseLine(line string) (Sample, bool) {
	line = strings.TrimRight(line, "\r\n")

	// perf does not quote fields in -x mode, so a plain split is exact.
	fields := strings.Split(line, ",")
	if len(fields) <= nameField {
		return Sample{}, false
	}

	name := strings.TrimSpace(fields[nameField])
	if name == "" {
		return Sample{}, false
	}

	value, err := strconv.ParseInt(strings.TrimSpace(fields[valueField]), 10, 64)
	if err != nil {
		return Sample{Name: name}, true
	}

	return Sample{Name: name, Value: value, Counted: true}, true
}

// Scan reads r line by line and calls fn with each line and the result of
// [ParseLine] for it. Scanning stops at the first error returned by fn.
func Scan(r io.Reader, fn func(line string, sample Sample, ok bool) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		sample, ok := ParseLine(line)

		err := fn(line, sample, ok)
		if err != nil {
			return err
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("reading counter output: %w", err)
	}

	return nil
}

// Parse reads r line by line and returns every [Sample] accepted by
// [ParseLine].
func Parse(r io.Reader) ([]Sample, error) {
	var samples []Sample

	err := Scan(r, func(_ string, sample Sample, ok bool) error {
		if ok {
			samples = append(samples, sample)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// Stats holds counter totals for one profiler, keyed by counter name.
type Stats map[string]int64

// Add adds the sample's value to the running total for its name.
func (s Stats) Add(sample Sample) {
	s[sample.Name] += sample.Value
}

// AddAll adds every sample in samples.
func (s Stats) AddAll(samples []Sample) {
	for _, sample := range samples {
		s.Add(sample)
	}
}

// Get returns the total for name and whether it was ever recorded.
func (s Stats) Get(name string) (int64, bool) {
	v, ok := s[name]

	return v, ok
}

// Table maps profiler identifiers to their [Stats], remembering the order in
// which profilers were first recorded.
//
// Create instances with [NewTable].
type Table struct {
	stats     map[string]Stats
	profilers []string
}

// NewTable creates an empty [Table].
func NewTable() *Table {
	return &Table{
		stats: map[string]Stats{},
	}
}

// Set stores stats for profiler. Setting a profiler again replaces its stats
// but keeps its original position.
func (t *Table) Set(profiler string, stats Stats) {
	if _, ok := t.stats[profiler]; !ok {
		t.profilers = append(t.profilers, profiler)
	}

	t.stats[profiler] = stats
}

// Stats returns the stats recorded for profiler.
func (t *Table) Stats(profiler string) (Stats, bool) {
	s, ok := t.stats[profiler]

	return s, ok
}

// Require returns the total for name recorded under profiler, or an error
// wrapping [ErrMissingCounter] that names both.
func (t *Table) Require(profiler, name string) (int64, error) {
	s, ok := t.stats[profiler]
	if !ok {
		return 0, fmt.Errorf("%w: no counters recorded for profiler %q", ErrMissingCounter, profiler)
	}

	v, ok := s.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q not reported for profiler %q", ErrMissingCounter, name, profiler)
	}

	return v, nil
}

// Profilers returns the recorded profiler identifiers in insertion order.
func (t *Table) Profilers() []string {
	out := make([]string, len(t.profilers))
	copy(out, t.profilers)

	return out
}

// Len returns the number of profilers in the table.
func (t *Table) Len() int {
	return len(t.profilers)
}
