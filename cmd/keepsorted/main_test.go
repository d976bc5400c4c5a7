package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/keepsorted/runner"
	"go.jacobcolvin.com/keepsorted/stringtest"
)

func TestRun(t *testing.T) {
	t.Parallel()

	unsorted := stringtest.JoinLF("# Keep sorted.", "b", "a", "")
	sorted := stringtest.JoinLF("# Keep sorted.", "a", "b", "")

	tcs := map[string]struct {
		err      error
		args     func(dir string) []string
		stdin    string
		wantOut  func(dir string) string
		wantFile string
	}{
		"write": {
			args:     func(dir string) []string { return []string{dir} },
			wantOut:  func(string) string { return "" },
			wantFile: sorted,
		},
		"list": {
			args:     func(dir string) []string { return []string{"-l", dir} },
			wantOut:  func(dir string) string { return filepath.Join(dir, "list.txt") + "\n" },
			wantFile: unsorted,
		},
		"check": {
			args:     func(dir string) []string { return []string{"--check", dir} },
			wantOut:  func(string) string { return "" },
			wantFile: unsorted,
			err:      runner.ErrUnsorted,
		},
		"stdin": {
			args:     func(string) []string { return []string{"--dialect", "generic", "-"} },
			stdin:    unsorted,
			wantOut:  func(string) string { return sorted },
			wantFile: unsorted,
		},
		"stdin needs a dialect": {
			args:     func(string) []string { return []string{"-"} },
			stdin:    unsorted,
			wantOut:  func(string) string { return "" },
			wantFile: unsorted,
			err:      errStdinDialect,
		},
		"stdin alone": {
			args:     func(dir string) []string { return []string{"--dialect", "generic", "-", dir} },
			wantOut:  func(string) string { return "" },
			wantFile: unsorted,
			err:      errStdinMixed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "list.txt")
			require.NoError(t, os.WriteFile(path, []byte(unsorted), 0o644))

			var stdout, stderr bytes.Buffer

			err := run(t.Context(), tc.args(dir), strings.NewReader(tc.stdin), &stdout, &stderr)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.wantOut(dir), stdout.String())

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFile, string(got))
		})
	}
}

func TestRunSettingsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("features: [codeowners]\n"), 0o644))

	owners := filepath.Join(dir, "CODEOWNERS")
	require.NoError(t, os.WriteFile(owners, []byte("/b @team\n/a @team\n"), 0o644))

	var stdout, stderr bytes.Buffer

	err := run(t.Context(), []string{"--config", settings, owners}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	got, err := os.ReadFile(owners)
	require.NoError(t, err)
	assert.Equal(t, "/a @team\n/b @team\n", string(got))
}

func TestRunDebugLogs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := run(t.Context(),
		[]string{"--log-level", "debug", "--log-format", "logfmt", "--dialect", "generic", "-"},
		strings.NewReader("# Keep sorted.\nb\na\n"), &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), `msg="region sorted"`)
	assert.Equal(t, "# Keep sorted.\na\nb\n", stdout.String())
}

func TestRunInvalidLogLevel(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := run(t.Context(), []string{"--log-level", "loud", "--dialect", "generic", "-"},
		strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	require.NoError(t, run(t.Context(), []string{"version"}, strings.NewReader(""), &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "keepsorted "))
}

func TestSchemaCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	require.NoError(t, run(t.Context(), []string{"schema"}, strings.NewReader(""), &stdout, &stderr))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Contains(t, doc, "properties")
}
