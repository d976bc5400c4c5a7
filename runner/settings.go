package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/keepsorted/keepsorted"
)

// DefaultSettingsFile is looked up in the working directory when no settings
// path is given.
const DefaultSettingsFile = ".keepsorted.yaml"

// Settings is the content of a .keepsorted.yaml file.
//
// Every field mirrors a CLI flag. A flag set on the command line wins over
// the file.
type Settings struct {
	// VerifyTOML is a pointer so that an explicit false can be told apart
	// from an absent key.
	VerifyTOML *bool    `json:"verifyToml,omitempty" yaml:"verifyToml,omitempty" jsonschema:"decode Cargo.toml files before and after sorting and refuse to write when they differ"`
	Features   []string `json:"features,omitempty" yaml:"features,omitempty" jsonschema:"opt-in dialects: gitignore, codeowners, rust-derive-alphabetical or rust-derive-canonical"`
	Exclude    []string `json:"exclude,omitempty" yaml:"exclude,omitempty" jsonschema:"doublestar globs of paths to skip while walking directories"`
	Jobs       int      `json:"jobs,omitempty" yaml:"jobs,omitempty" jsonschema:"number of files processed in parallel, 0 for one per CPU"`
}

// LoadSettings reads settings from path. When path is empty,
// [DefaultSettingsFile] is tried and a missing file yields zero settings.
func LoadSettings(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // Settings path from CLI flag is expected.
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}

		return Settings{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return ParseSettings(data)
}

// ParseSettings decodes YAML settings. Unknown keys are rejected.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings

	err := yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField())
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if s.Jobs < 0 {
		return Settings{}, fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidSettings, s.Jobs)
	}

	_, err = keepsorted.ParseFeatures(s.Features)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return s, nil
}

// Apply copies s into the configs for every flag that was not set on the
// command line.
func (s Settings) Apply(flags *pflag.FlagSet, rc *Config, kc *keepsorted.Config) {
	changed := func(name string) bool {
		f := flags.Lookup(name)

		return f != nil && f.Changed
	}

	if s.Features != nil && !changed(kc.Flags.Features) {
		kc.Features = s.Features
	}

	if s.Exclude != nil && !changed(rc.Flags.Exclude) {
		rc.Exclude = s.Exclude
	}

	if s.Jobs != 0 && !changed(rc.Flags.Jobs) {
		rc.Jobs = s.Jobs
	}

	if s.VerifyTOML != nil && !changed(rc.Flags.VerifyTOML) {
		rc.VerifyTOML = *s.VerifyTOML
	}
}
