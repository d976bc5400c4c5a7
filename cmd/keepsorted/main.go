// Command keepsorted sorts marked lists in source files.
//
// # Usage
//
//	keepsorted [flags] <file|directory>...
//	keepsorted --dialect <dialect> [flags] -
//
// Directories are walked recursively and every file is sorted with the
// dialect chosen by its name. With "-" the input is read from stdin and the
// sorted result is written to stdout.
//
// # Modes
//
//	-w   write sorted output back to the source files (default)
//	-l   list files whose content would change
//	-d   print a unified diff of the changes
//	--check  fail when any file is not sorted
//
// Flag defaults may be set in a .keepsorted.yaml file, whose JSON Schema is
// printed by "keepsorted schema".
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/keepsorted/keepsorted"
	"go.jacobcolvin.com/keepsorted/log"
	"go.jacobcolvin.com/keepsorted/profile"
	"go.jacobcolvin.com/keepsorted/runner"
	"go.jacobcolvin.com/keepsorted/version"
)

var (
	errStdinDialect = errors.New("reading stdin requires --dialect")
	errStdinMixed   = errors.New("stdin cannot be combined with other paths")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "keepsorted: %v\n", err)
		os.Exit(1)
	}
}

// run executes the CLI with args and returns the first error, including
// errors from writing profiles.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	prof := profile.NewConfig()
	cmd := newRootCommand(stdin, stdout, stderr, prof)
	cmd.SetArgs(args)

	p := prof.NewProfiler()
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return p.Start()
	}

	err := cmd.ExecuteContext(ctx)

	return errors.Join(err, p.Stop())
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer, prof *profile.Config) *cobra.Command {
	logCfg := log.NewConfig()
	sortCfg := keepsorted.NewConfig()
	runCfg := runner.NewConfig()

	cmd := &cobra.Command{
		Use:   "keepsorted [flags] <path>... | -",
		Short: "Sort marked lists in source files",
		Long: `keepsorted sorts the entries of lists that are marked with a "# Keep sorted."
comment, Bazel string lists, Cargo.toml dependency tables and, when enabled,
.gitignore and CODEOWNERS paragraphs and Rust derive attributes.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(stderr)
			if err != nil {
				return err
			}

			logger := slog.New(handler)

			settings, err := runner.LoadSettings(runCfg.Settings)
			if err != nil {
				return err
			}

			settings.Apply(cmd.Flags(), runCfg, sortCfg)

			classify, err := sortCfg.Classifier()
			if err != nil {
				return err
			}

			r, err := runCfg.NewRunner(sortCfg.NewSorter(logger), classify, stdout, logger, useColor(stdout))
			if err != nil {
				return err
			}

			if !slices.Contains(args, runner.StdinPath) {
				return r.Run(cmd.Context(), args)
			}

			if len(args) > 1 {
				return errStdinMixed
			}

			if sortCfg.Dialect == "" {
				return errStdinDialect
			}

			return r.RunStdin(stdin, classify(runner.StdinPath))
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	logCfg.RegisterFlags(cmd.PersistentFlags())
	prof.RegisterFlags(cmd.PersistentFlags())
	sortCfg.RegisterFlags(cmd.Flags())
	runCfg.RegisterFlags(cmd.Flags())

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		prof.RegisterCompletions,
		sortCfg.RegisterCompletions,
		runCfg.RegisterCompletions,
	} {
		err := register(cmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	cmd.AddCommand(newVersionCommand(stdout), newSchemaCommand(stdout))

	return cmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := io.WriteString(stdout, version.Get().String())

			return err
		},
	}
}

func newSchemaCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of " + runner.DefaultSettingsFile,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := runner.SchemaJSON()
			if err != nil {
				return err
			}

			_, err = stdout.Write(out)

			return err
		},
	}
}

// useColor reports whether w is a terminal that accepts ANSI colors.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
