// Package profile defines counter profiles: the set of hardware events
// requested from `perf stat` for a run.
//
// Every profile requests the base events (cycles, instructions, branches,
// branch-misses) plus one secondary pair of reference and miss events. The
// built-in profiles are "cache" (cache-references, cache-misses) and "l1d"
// (L1-dcache-loads, L1-dcache-load-misses). Additional profiles can be loaded
// from a YAML file with [LoadFile]:
//
//	profiles:
//	  - name: llc
//	    references: LLC-loads
//	    misses: LLC-load-misses
//
// Use [Config.RegisterFlags] to add CLI flags and [Config.NewProfile] to
// resolve the selected profile:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//
//	p, err := cfg.NewProfile()
//	events := p.EventList() // "cycles,instructions,...,cache-misses"
package profile
