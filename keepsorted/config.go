package keepsorted

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for sorting configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Features string
	Dialect  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for sorting configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewSorter] to create a [Sorter] and
// [Config.Classifier] to map file names to dialects.
type Config struct {
	// Dialect forces a dialect for every input. Empty selects by file name.
	Dialect  string
	Features []string
	Flags    Flags
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Features: "features",
		Dialect:  "dialect",
	}

	return f.NewConfig()
}

// RegisterFlags adds sorting flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringSliceVar(&c.Features, c.Flags.Features, nil,
		fmt.Sprintf("opt-in dialects, any of: %s", strings.Join(GetAllFeatureStrings(), ", ")))
	flags.StringVar(&c.Dialect, c.Flags.Dialect, "",
		fmt.Sprintf("force a dialect instead of choosing by file name, one of: %s",
			strings.Join(GetAllDialectStrings(), ", ")))
}

// RegisterCompletions registers shell completions for sorting flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Features,
		cobra.FixedCompletions(GetAllFeatureStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Features, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Dialect,
		cobra.FixedCompletions(GetAllDialectStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Dialect, err)
	}

	return nil
}

// NewSorter creates a [Sorter] logging to logger.
func (c *Config) NewSorter(logger *slog.Logger) *Sorter {
	return NewSorter(WithLogger(logger))
}

// Classifier returns a function mapping a path to its dialect. When
// [Config.Dialect] is set, every path maps to it.
func (c *Config) Classifier() (func(path string) Dialect, error) {
	if c.Dialect != "" {
		d, err := ParseDialect(c.Dialect)
		if err != nil {
			return nil, err
		}

		return func(string) Dialect { return d }, nil
	}

	features, err := ParseFeatures(c.Features)
	if err != nil {
		return nil, err
	}

	return func(path string) Dialect {
		return DialectForPath(path, features)
	}, nil
}
