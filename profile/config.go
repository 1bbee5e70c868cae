package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for counter profile configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	CounterProfile string
	ProfilesFile   string
	EventModifier  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:         f,
		Profile:       NameCache,
		EventModifier: DefaultModifier,
	}
}

// Config holds the counter profile selection for a run.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfile] to resolve the selected
// [Profile].
type Config struct {
	Flags Flags

	// Profile is the name of the selected counter profile.
	Profile string
	// ProfilesFile is an optional YAML file of extra profiles.
	ProfilesFile string
	// EventModifier is the perf modifier expected on reported counter names.
	EventModifier string
}

// NewConfig creates a new [Config] with default flag names, selecting the
// "cache" profile with user-space counters.
func NewConfig() *Config {
	f := Flags{
		CounterProfile: "counter-profile",
		ProfilesFile:   "profiles-file",
		EventModifier:  "event-modifier",
	}

	return f.NewConfig()
}

// RegisterFlags adds counter profile flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Profile, c.Flags.CounterProfile, NameCache,
		"counter profile selecting the secondary events")
	flags.StringVar(&c.ProfilesFile, c.Flags.ProfilesFile, "",
		"YAML file defining additional counter profiles")
	flags.StringVar(&c.EventModifier, c.Flags.EventModifier, DefaultModifier,
		"perf event modifier expected on reported counter names (empty for none)")
}

// RegisterCompletions registers shell completions for counter profile flags
// on cmd. Profile names complete from the built-in set only, since the
// profiles file is not read until the command runs.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.CounterProfile,
		cobra.FixedCompletions(Builtin().Names(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.CounterProfile, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.ProfilesFile,
		cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.ProfilesFile, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.EventModifier,
		cobra.FixedCompletions([]string{"u", "k", "h"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.EventModifier, err)
	}

	return nil
}

// NewProfile resolves the selected [Profile], loading the profiles file when
// one is configured.
func (c *Config) NewProfile() (Profile, error) {
	set := Builtin()

	if c.ProfilesFile != "" {
		profiles, err := LoadFile(c.ProfilesFile)
		if err != nil {
			return Profile{}, err
		}

		set.Merge(profiles...)
	}

	p, err := set.Lookup(c.Profile)
	if err != nil {
		return Profile{}, err
	}

	p = p.WithModifier(c.EventModifier)

	err = p.Validate()
	if err != nil {
		return Profile{}, err
	}

	return p, nil
}
