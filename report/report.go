// Package report renders accumulated counters as a markdown summary table.
//
// [Build] derives one [Row] per profiler from a [counter.Table], and [Render]
// formats the raw table dump followed by the markdown table:
//
//	||cycles|instructions|branch-misses|cache-misses|
//	|-|-|-|-|-|
//	|wasmtime|20|40|0.2|0.25|
//
// Ratios with a zero denominator render as [Undefined].
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"go.jacobcolvin.com/perfwrap/counter"
	"go.jacobcolvin.com/perfwrap/profile"
)

// Undefined is rendered for a ratio whose denominator is zero.
const Undefined = "undefined"

// Ratio is a quotient of two counter totals.
type Ratio struct {
	Numerator   int64
	Denominator int64
}

// Value returns the quotient, or false when the denominator is zero.
func (r Ratio) Value() (float64, bool) {
	if r.Denominator == 0 {
		return 0, false
	}

	return float64(r.Numerator) / float64(r.Denominator), true
}

// String returns the shortest fixed-point representation of the quotient, or
// [Undefined]. Whole quotients keep one decimal place, so 1 is "1.0".
func (r Ratio) String() string {
	v, ok := r.Value()
	if !ok {
		return Undefined
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// Row is the summary for one profiler.
type Row struct {
	Profiler     string
	Cycles       int64
	Instructions int64
	BranchMisses Ratio
	Secondary    Ratio
}

// Report is the derived summary of a [counter.Table].
type Report struct {
	// Column is the header of the secondary ratio column.
	Column string
	Rows   []Row
}

// Build derives a [Report] from table using the counter names of p.
//
// Every required counter must be present for every profiler; otherwise Build
// returns an error wrapping [counter.ErrMissingCounter].
func Build(table *counter.Table, p profile.Profile) (Report, error) {
	rep := Report{
		Column: p.Label(),
		Rows:   make([]Row, 0, table.Len()),
	}

	for _, name := range table.Profilers() {
		values := map[string]int64{}

		for _, event := range p.Events() {
			key := p.Key(event)

			v, err := table.Require(name, key)
			if err != nil {
				return Report{}, err
			}

			values[event] = v
		}

		rep.Rows = append(rep.Rows, Row{
			Profiler:     name,
			Cycles:       values[profile.EventCycles],
			Instructions: values[profile.EventInstructions],
			BranchMisses: Ratio{
				Numerator:   values[profile.EventBranchMisses],
				Denominator: values[profile.EventBranches],
			},
			Secondary: Ratio{
				Numerator:   values[p.Misses],
				Denominator: values[p.References],
			},
		})
	}

	return rep, nil
}

// Markdown formats the report as a markdown table with a trailing newline.
func (r Report) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "||%s|%s|%s|%s|\n",
		profile.EventCycles, profile.EventInstructions, profile.EventBranchMisses, r.Column)
	sb.WriteString("|-|-|-|-|-|\n")

	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "|%s|%d|%d|%s|%s|\n",
			row.Profiler, row.Cycles, row.Instructions, row.BranchMisses, row.Secondary)
	}

	return sb.String()
}

type dumpEntry struct {
	Counters counter.Stats
	Profiler string
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump returns a debug dump of every profiler's raw counter totals, in table
// order.
func Dump(table *counter.Table) string {
	entries := make([]dumpEntry, 0, table.Len())

	for _, name := range table.Profilers() {
		stats, _ := table.Stats(name)
		entries = append(entries, dumpEntry{Profiler: name, Counters: stats})
	}

	return dumper.Sdump(entries)
}

// Render returns the raw dump of table, a blank line, and the markdown
// summary built with p.
func Render(table *counter.Table, p profile.Profile) (string, error) {
	rep, err := Build(table, p)
	if err != nil {
		return "", err
	}

	return Dump(table) + "\n" + rep.Markdown(), nil
}
