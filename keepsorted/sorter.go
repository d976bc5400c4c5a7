package keepsorted

import (
	"log/slog"
	"strings"
)

// Sorter sorts the marked regions of line-based text.
//
// A Sorter holds no per-input state and is safe for concurrent use.
//
// Create instances with [NewSorter].
type Sorter struct {
	patterns *Patterns
	logger   *slog.Logger
}

// Option configures a [Sorter].
type Option func(*Sorter)

// WithPatterns replaces the default [Patterns].
func WithPatterns(p *Patterns) Option {
	return func(s *Sorter) {
		s.patterns = p
	}
}

// WithLogger sets the logger used for region level debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sorter) {
		s.logger = logger
	}
}

// NewSorter creates a [Sorter] with the given options.
func NewSorter(opts ...Option) *Sorter {
	s := &Sorter{}
	for _, opt := range opts {
		opt(s)
	}

	if s.patterns == nil {
		s.patterns = NewPatterns()
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// SortLines sorts the regions of lines for dialect d. Every line must keep
// its terminator, as returned by [SplitLines]. The input slice is not
// modified. Lines outside of regions are returned unchanged.
func (s *Sorter) SortLines(d Dialect, lines []string) ([]string, error) {
	table, err := transitionsFor(d)
	if err != nil {
		return nil, err
	}

	if s.patterns.IgnoresFile(lines) {
		s.logger.Debug("file ignored by directive", slog.String("dialect", d.String()))

		return lines, nil
	}

	sc := &scanner{
		patterns: s.patterns,
		logger:   s.logger,
		table:    table,
		dialect:  d,
	}

	return sc.run(lines), nil
}

// Sort sorts the regions of src for dialect d.
//
// The result ends with a line terminator exactly when src does. A missing
// final terminator is supplied for the duration of the sort, using the style
// of the last terminated line, and removed again afterwards.
func (s *Sorter) Sort(d Dialect, src []byte) ([]byte, error) {
	content := string(src)

	eol := ""
	if !strings.HasSuffix(content, "\n") {
		eol = "\n"
		if i := strings.LastIndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
			eol = "\r\n"
		}

		content += eol
	}

	lines, err := s.SortLines(d, SplitLines(content))
	if err != nil {
		return nil, err
	}

	out := strings.TrimSuffix(strings.Join(lines, ""), eol)

	return []byte(out), nil
}

// SplitLines splits content after each '\n', keeping the terminators.
// A final line without a terminator is kept as is.
func SplitLines(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
