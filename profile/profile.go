package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Base events requested by every profile.
const (
	EventCycles       = "cycles"
	EventInstructions = "instructions"
	EventBranches     = "branches"
	EventBranchMisses = "branch-misses"
)

// Built-in profile names.
const (
	NameCache = "cache"
	NameL1D   = "l1d"
)

// DefaultModifier scopes counters to user space.
const DefaultModifier = "u"

var (
	// ErrUnknownProfile indicates a profile name that is not defined.
	ErrUnknownProfile = errors.New("unknown counter profile")
	// ErrInvalidProfile indicates a profile definition that cannot be used.
	ErrInvalidProfile = errors.New("invalid counter profile")
)

// Profile is a named set of events requested from perf.
type Profile struct {
	// Name identifies the profile on the command line.
	Name string `json:"name" yaml:"name"`
	// References is the secondary denominator event.
	References string `json:"references" yaml:"references"`
	// Misses is the secondary numerator event.
	Misses string `json:"misses" yaml:"misses"`
	// Column is the report header for the secondary ratio. Defaults to Misses.
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
	// Modifier is the perf event modifier that perf appends to each reported
	// counter name, e.g. "u" for "cycles:u". Empty means unmodified names.
	Modifier string `json:"-" yaml:"-"`
}

// BaseEvents returns the events every profile requests.
func BaseEvents() []string {
	return []string{EventCycles, EventInstructions, EventBranches, EventBranchMisses}
}

// Events returns the base events followed by the profile's secondary pair.
func (p Profile) Events() []string {
	return append(BaseEvents(), p.References, p.Misses)
}

// EventList returns [Profile.Events] joined for perf's -e flag.
func (p Profile) EventList() string {
	return strings.Join(p.Events(), ",")
}

// Label returns the report header for the secondary ratio.
func (p Profile) Label() string {
	if p.Column != "" {
		return p.Column
	}

	return p.Misses
}

// Key returns the counter name perf reports for event under the profile's
// modifier.
func (p Profile) Key(event string) string {
	if p.Modifier == "" {
		return event
	}

	return event + ":" + p.Modifier
}

// WithModifier returns a copy of p using modifier.
func (p Profile) WithModifier(modifier string) Profile {
	p.Modifier = modifier

	return p
}

// Validate reports whether p can be passed to perf.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}

	for _, f := range []struct{ field, event string }{
		{"references", p.References},
		{"misses", p.Misses},
	} {
		field, event := f.field, f.event
		if strings.TrimSpace(event) == "" {
			return fmt.Errorf("%w: %s: empty %s event", ErrInvalidProfile, p.Name, field)
		}

		if strings.ContainsAny(event, ", \t") {
			return fmt.Errorf("%w: %s: %s event %q must be a single event name",
				ErrInvalidProfile, p.Name, field, event)
		}
	}

	if strings.ContainsAny(p.Modifier, ",: \t") {
		return fmt.Errorf("%w: %s: modifier %q", ErrInvalidProfile, p.Name, p.Modifier)
	}

	return nil
}

// Set holds profiles by name.
type Set map[string]Profile

// Builtin returns a new [Set] containing the built-in profiles.
func Builtin() Set {
	return Set{
		NameCache: {
			Name:       NameCache,
			References: "cache-references",
			Misses:     "cache-misses",
		},
		NameL1D: {
			Name:       NameL1D,
			References: "L1-dcache-loads",
			Misses:     "L1-dcache-load-misses",
		},
	}
}

// Merge adds profiles to s, replacing entries with the same name.
func (s Set) Merge(profiles ...Profile) {
	for _, p := range profiles {
		s[p.Name] = p
	}
}

// Names returns the profile names in sorted order.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Lookup returns the profile called name.
func (s Set) Lookup(name string) (Profile, error) {
	p, ok := s[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownProfile, name, strings.Join(s.Names(), ", "))
	}

	return p, nil
}
