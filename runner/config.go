package runner

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/keepsorted/keepsorted"
)

// Flags holds CLI flag names for file processing configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Write      string
	List       string
	Diff       string
	Check      string
	Exclude    string
	Jobs       string
	VerifyTOML string
	Settings   string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for file processing.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRunner] to create a [Runner].
type Config struct {
	Flags    Flags
	Settings string
	Exclude  []string
	Jobs     int

	Write      bool
	List       bool
	Diff       bool
	Check      bool
	VerifyTOML bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Write:      "write",
		List:       "list",
		Diff:       "diff",
		Check:      "check",
		Exclude:    "exclude",
		Jobs:       "jobs",
		VerifyTOML: "verify-toml",
		Settings:   "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds file processing flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.Write, c.Flags.Write, "w", true,
		"write sorted output back to the source file instead of stdout")
	flags.BoolVarP(&c.List, c.Flags.List, "l", false,
		"list files whose content would change, without writing")
	flags.BoolVarP(&c.Diff, c.Flags.Diff, "d", false,
		"print a unified diff of the changes, without writing")
	flags.BoolVar(&c.Check, c.Flags.Check, false,
		"exit with an error when any file is not sorted, without writing")
	flags.StringSliceVar(&c.Exclude, c.Flags.Exclude, nil,
		"doublestar globs of paths to skip while walking directories")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", 0,
		"number of files processed in parallel, 0 for one per CPU")
	flags.BoolVar(&c.VerifyTOML, c.Flags.VerifyTOML, true,
		"refuse to write Cargo.toml files whose decoded content would change")
	flags.StringVar(&c.Settings, c.Flags.Settings, "",
		"path of a settings file (default "+DefaultSettingsFile+" if present)")
}

// RegisterCompletions registers shell completions for file processing flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Jobs, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Jobs, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Settings,
		cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Settings, err)
	}

	return nil
}

// Mode derives the output [Mode] from the flags. Diff wins over list, list
// wins over check, and write only applies when none of them is set.
func (c *Config) Mode() Mode {
	switch {
	case c.Diff:
		return ModeDiff
	case c.List:
		return ModeList
	case c.Check:
		return ModeCheck
	case c.Write:
		return ModeWrite
	}

	return ModePrint
}

// NewRunner creates a [Runner] from c, sorting with sorter and classifying
// paths with classify. Output for list, diff and print modes goes to out.
// Colored diffs are written when color is true.
func (c *Config) NewRunner(
	sorter *keepsorted.Sorter,
	classify func(path string) keepsorted.Dialect,
	out io.Writer,
	logger *slog.Logger,
	color bool,
) (*Runner, error) {
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: bad exclude pattern %q", ErrInvalidSettings, pattern)
		}
	}

	return New(sorter, classify,
		WithMode(c.Mode()),
		WithCheck(c.Check),
		WithOutput(out),
		WithLogger(logger),
		WithJobs(c.Jobs),
		WithExclude(c.Exclude...),
		WithVerifyTOML(c.VerifyTOML),
		WithColor(color),
	), nil
}
