package keepsorted_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/keepsorted/keepsorted"
)

func TestConfigRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := keepsorted.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{"--features", "gitignore,rust-derive-canonical", "--dialect", "bazel"})
	require.NoError(t, err)

	assert.Equal(t, []string{"gitignore", "rust-derive-canonical"}, cfg.Features)
	assert.Equal(t, "bazel", cfg.Dialect)
}

func TestConfigRegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := keepsorted.NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))
}

func TestConfigClassifier(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err      error
		want     map[string]keepsorted.Dialect
		dialect  string
		features []string
	}{
		"by file name": {
			features: []string{"codeowners"},
			want: map[string]keepsorted.Dialect{
				"BUILD":      keepsorted.Bazel,
				"CODEOWNERS": keepsorted.PathOwnership,
				".gitignore": keepsorted.Generic,
			},
		},
		"forced dialect": {
			dialect: "cargo-toml",
			want: map[string]keepsorted.Dialect{
				"BUILD":    keepsorted.DependencyTable,
				"notes.md": keepsorted.DependencyTable,
			},
		},
		"unknown dialect": {
			dialect: "xml",
			err:     keepsorted.ErrUnknownDialect,
		},
		"unknown feature": {
			features: []string{"xml"},
			err:      keepsorted.ErrUnknownFeature,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := keepsorted.NewConfig()
			cfg.Dialect = tc.dialect
			cfg.Features = tc.features

			classify, err := cfg.Classifier()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)

			for path, want := range tc.want {
				assert.Equal(t, want, classify(path), path)
			}
		})
	}
}
