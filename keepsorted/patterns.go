package keepsorted

import (
	"regexp"
	"strings"
)

// Patterns holds the compiled line matchers used by a [Sorter].
//
// Create instances with [NewPatterns]. Callers may replace individual
// expressions before handing the value to [WithPatterns], which is mostly
// useful in tests.
type Patterns struct {
	// KeepSorted matches the trigger comment that opens a region in the
	// generic and Bazel dialects.
	KeepSorted *regexp.Regexp
	// IgnoreFile matches the directive that disables sorting for a whole file.
	IgnoreFile *regexp.Regexp
	// IgnoreBlock matches the directive that disables sorting for one region.
	IgnoreBlock *regexp.Regexp
	// DependencyHeader matches Cargo.toml dependency table headers.
	DependencyHeader *regexp.Regexp
	// DeriveBegin matches the first line of a Rust derive attribute.
	DeriveBegin *regexp.Regexp
	// DeriveEnd matches the last line of a Rust derive attribute.
	DeriveEnd *regexp.Regexp
}

// NewPatterns compiles the default [Patterns].
func NewPatterns() *Patterns {
	return &Patterns{
		KeepSorted: regexp.MustCompile(
			`(?i)^\s*(?:#|//)\s*(?:keepsorted\s*:\s*)?keep\s*sorted\s*\.?\s*$`),
		IgnoreFile: regexp.MustCompile(
			`(?i)^\s*(?:#|//)\s*keepsorted\s*:\s*ignore\s*file\s*\.?\s*$`),
		IgnoreBlock: regexp.MustCompile(
			`(?i)^\s*(?:#|//)\s*keepsorted\s*:\s*ignore\s*block\s*\.?\s*$`),
		DependencyHeader: regexp.MustCompile(
			`^\s*\[(?:[^\[\]]*\.)?(?:dev-|build-)?dependencies(?:\.[^\[\]]+)?\]\s*(?:#.*)?\s*$`),
		DeriveBegin: regexp.MustCompile(`^\s*#\[derive\(`),
		DeriveEnd:   regexp.MustCompile(`\)\]\s*$`),
	}
}

// IsTrigger reports whether line is a "Keep sorted." comment.
func (p *Patterns) IsTrigger(line string) bool {
	return p.KeepSorted.MatchString(line)
}

// IgnoresFile reports whether any of lines carries the ignore-file directive.
func (p *Patterns) IgnoresFile(lines []string) bool {
	for _, line := range lines {
		if p.IgnoreFile.MatchString(line) {
			return true
		}
	}

	return false
}

// IgnoresBlock reports whether any of lines carries the ignore-block
// directive.
func (p *Patterns) IgnoresBlock(lines []string) bool {
	for _, line := range lines {
		if p.IgnoreBlock.MatchString(line) {
			return true
		}
	}

	return false
}

// IsComment reports whether line is a single-line comment in dialect d.
//
// Bazel, Cargo.toml and path-ownership files only know '#' comments. Generic
// files accept both '#' and '//'. Rust files only use '//', since '#' starts
// an attribute there.
func IsComment(d Dialect, line string) bool {
	trimmed := strings.TrimSpace(line)

	switch d {
	case Bazel, DependencyTable, PathOwnership:
		return strings.HasPrefix(trimmed, "#")
	case RustDeriveAlphabetical, RustDeriveCanonical:
		return strings.HasPrefix(trimmed, "//")
	case Generic:
		return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
	}

	return false
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// stripComment returns line without its trailing '#' comment, trimmed.
// A '#' inside a double-quoted literal does not start a comment, and a
// backslash escapes the next character inside a literal.
func stripComment(line string) string {
	inString := false
	escaped := false

	for i := range len(line) {
		c := line[i]

		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case c == '#' && !inString:
			return strings.TrimSpace(line[:i])
		}
	}

	return strings.TrimSpace(line)
}

// scanCode calls fn for every rune of code outside double-quoted literals.
// A backslash escapes the next rune inside a literal. code must already be
// stripped of comments.
func scanCode(code string, fn func(c rune)) {
	inString := false
	escaped := false

	for _, c := range code {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString:
			fn(c)
		}
	}
}

// bracketDelta returns the number of opening minus closing brackets of the
// given kinds in code, ignoring anything inside double-quoted literals.
func bracketDelta(code, open, closing string) int {
	delta := 0

	scanCode(code, func(c rune) {
		switch {
		case strings.ContainsRune(open, c):
			delta++
		case strings.ContainsRune(closing, c):
			delta--
		}
	})

	return delta
}

// containsCode reports whether code holds r outside double-quoted literals.
func containsCode(code string, r rune) bool {
	found := false

	scanCode(code, func(c rune) {
		if c == r {
			found = true
		}
	})

	return found
}
