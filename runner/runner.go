package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"go.jacobcolvin.com/keepsorted/keepsorted"
)

var (
	// ErrReadInput indicates a file or stdin could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates sorted output could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrSemanticChange indicates that sorting would change the decoded
	// content of a structured file.
	ErrSemanticChange = errors.New("sorting changes decoded content")
	// ErrUnsorted indicates that at least one input is not sorted.
	ErrUnsorted = errors.New("not sorted")
	// ErrInvalidSettings indicates a malformed settings file or flag value.
	ErrInvalidSettings = errors.New("invalid settings")
)

// StdinPath is the path argument that selects stdin.
const StdinPath = "-"

// Mode selects what a [Runner] does with sorted content.
type Mode int

const (
	// ModeWrite writes changed files back in place.
	ModeWrite Mode = iota
	// ModeList prints the paths of files that would change.
	ModeList
	// ModeDiff prints a unified diff per changed file.
	ModeDiff
	// ModeCheck prints nothing; pair it with [WithCheck].
	ModeCheck
	// ModePrint prints the sorted content of every file.
	ModePrint
)

// Result is the outcome of sorting one input.
type Result struct {
	Path    string
	Before  []byte
	After   []byte
	Dialect keepsorted.Dialect
	// Skipped is set for inputs that are not UTF-8 text.
	Skipped bool
}

// Changed reports whether sorting modified the input.
func (r Result) Changed() bool {
	return !bytes.Equal(r.Before, r.After)
}

// Runner applies a [keepsorted.Sorter] to files.
//
// Create instances with [New] or [Config.NewRunner].
type Runner struct {
	sorter     *keepsorted.Sorter
	classify   func(path string) keepsorted.Dialect
	out        io.Writer
	logger     *slog.Logger
	exclude    []string
	jobs       int
	mode       Mode
	check      bool
	verifyTOML bool
	color      bool
}

// Option configures a [Runner].
type Option func(*Runner)

// WithMode sets the output [Mode]. The default is [ModeWrite].
func WithMode(m Mode) Option {
	return func(r *Runner) {
		r.mode = m
	}
}

// WithCheck makes [Runner.Run] return [ErrUnsorted] when any input changed.
func WithCheck(check bool) Option {
	return func(r *Runner) {
		r.check = check
	}
}

// WithOutput sets the writer for list, diff and print output.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithJobs bounds the number of files processed at once. Values below one
// select [runtime.GOMAXPROCS].
func WithJobs(n int) Option {
	return func(r *Runner) {
		r.jobs = n
	}
}

// WithExclude adds doublestar patterns of paths to skip. A pattern matches
// either the slash separated path or its base name.
func WithExclude(patterns ...string) Option {
	return func(r *Runner) {
		r.exclude = append(r.exclude, patterns...)
	}
}

// WithVerifyTOML enables [VerifyTOML] for [keepsorted.DependencyTable]
// inputs.
func WithVerifyTOML(verify bool) Option {
	return func(r *Runner) {
		r.verifyTOML = verify
	}
}

// WithColor enables ANSI colors in diff output.
func WithColor(color bool) Option {
	return func(r *Runner) {
		r.color = color
	}
}

// New creates a [Runner] sorting with sorter and choosing dialects with
// classify.
func New(sorter *keepsorted.Sorter, classify func(path string) keepsorted.Dialect, opts ...Option) *Runner {
	r := &Runner{
		sorter:     sorter,
		classify:   classify,
		out:        os.Stdout,
		logger:     slog.Default(),
		verifyTOML: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run sorts every file named by paths. Directories are walked recursively.
//
// A failure on one file does not stop the others; all failures are joined
// in the returned error. With [WithCheck], [ErrUnsorted] is added when any
// file changed.
func (r *Runner) Run(ctx context.Context, paths []string) error {
	files, err := r.Discover(paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		r.logger.Debug("no files to process")

		return nil
	}

	results := make([]Result, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers(len(files)))

	for i, file := range files {
		g.Go(func() error {
			err := gctx.Err()
			if err != nil {
				return err
			}

			results[i], errs[i] = r.ProcessFile(file)
			if errs[i] == nil && r.mode == ModeWrite && results[i].Changed() {
				errs[i] = WriteFile(file, results[i].After)
			}

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return err
	}

	var failures []error

	unsorted := 0

	for i, res := range results {
		if errs[i] != nil {
			r.logger.Error("process file", slog.String("path", files[i]), slog.Any("error", errs[i]))
			failures = append(failures, errs[i])

			continue
		}

		if res.Changed() {
			unsorted++
		}

		err := r.report(res)
		if err != nil {
			return errors.Join(append(failures, err)...)
		}
	}

	r.logger.Debug("processed files",
		slog.Int("files", len(files)),
		slog.Int("changed", unsorted),
		slog.Int("failed", len(failures)),
	)

	if r.check && unsorted > 0 {
		failures = append(failures, fmt.Errorf("%w: %d file(s)", ErrUnsorted, unsorted))
	}

	return errors.Join(failures...)
}

// RunStdin sorts in with dialect d. [ModeWrite] behaves like [ModePrint],
// since there is no file to write back to.
func (r *Runner) RunStdin(in io.Reader, d keepsorted.Dialect) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}

	res, err := r.Process(StdinPath, d, src)
	if err != nil {
		return err
	}

	mode := r.mode
	if mode == ModeWrite {
		mode = ModePrint
	}

	err = r.emit(mode, res)
	if err != nil {
		return err
	}

	if r.check && res.Changed() {
		return fmt.Errorf("%w: stdin", ErrUnsorted)
	}

	return nil
}

// ProcessFile reads and sorts the file at name. It never writes.
func (r *Runner) ProcessFile(name string) (Result, error) {
	src, err := os.ReadFile(name) //nolint:gosec // Paths come from the command line.
	if err != nil {
		return Result{Path: name}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return r.Process(name, r.classify(name), src)
}

// Process sorts src with dialect d. name is only used for reporting.
func (r *Runner) Process(name string, d keepsorted.Dialect, src []byte) (Result, error) {
	res := Result{
		Path:    name,
		Dialect: d,
		Before:  src,
		After:   src,
	}

	logger := r.logger.With(slog.String("path", name), slog.String("dialect", d.String()))

	if !utf8.Valid(src) {
		logger.Debug("skipping non-text file")

		res.Skipped = true

		return res, nil
	}

	out, err := r.sorter.Sort(d, src)
	if err != nil {
		return res, fmt.Errorf("%s: %w", name, err)
	}

	res.After = out

	if d == keepsorted.DependencyTable && r.verifyTOML && res.Changed() {
		err = VerifyTOML(src, out)
		if err != nil {
			res.After = src

			return res, fmt.Errorf("%s: %w", name, err)
		}
	}

	logger.Debug("processed file", slog.Bool("changed", res.Changed()))

	return res, nil
}

// Discover expands paths into the list of files to process, in argument
// order and without duplicates. Directories are walked recursively, skipping
// .git directories and anything matched by an exclude pattern.
func (r *Runner) Discover(paths []string) ([]string, error) {
	var files []string

	seen := map[string]bool{}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		if !info.IsDir() {
			if r.Excluded(root) {
				r.logger.Debug("excluded", slog.String("path", root))

				continue
			}

			add(root)

			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if p != root && (d.Name() == ".git" || r.excludedUnder(root, p)) {
					return filepath.SkipDir
				}

				return nil
			}

			if d.Type().IsRegular() && !r.excludedUnder(root, p) {
				add(p)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	return files, nil
}

// Excluded reports whether p matches any exclude pattern, either as a whole
// or by its base name.
func (r *Runner) Excluded(p string) bool {
	slashed := filepath.ToSlash(filepath.Clean(p))
	base := path.Base(slashed)

	for _, pattern := range r.exclude {
		if doublestar.MatchUnvalidated(pattern, slashed) || doublestar.MatchUnvalidated(pattern, base) {
			return true
		}
	}

	return false
}

// excludedUnder also matches p relative to the walk root, so that patterns
// like "vendor/**" work for any root.
func (r *Runner) excludedUnder(root, p string) bool {
	if r.Excluded(p) {
		return true
	}

	rel, err := filepath.Rel(root, p)

	return err == nil && r.Excluded(rel)
}

func (r *Runner) workers(files int) int {
	n := r.jobs
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}

	return max(1, min(n, files))
}
