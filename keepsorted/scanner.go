package keepsorted

import (
	"fmt"
	"log/slog"
	"strings"
)

// state is a region scanner state.
type state int

const (
	// stateOutside: not inside a region. For Bazel also not inside a list.
	stateOutside state = iota
	// stateInScope: inside a Bazel list literal, waiting for a trigger.
	stateInScope
	// stateSorting: accumulating the lines of an open region.
	stateSorting
)

// stepFunc consumes one line in a given state and returns the next state.
type stepFunc func(s *scanner, line string) state

// transitions maps each reachable state of a dialect to its step function.
type transitions map[state]stepFunc

// transitionsFor returns the state machine of dialect d.
func transitionsFor(d Dialect) (transitions, error) {
	switch d {
	case Generic:
		return transitions{
			stateOutside: genericOutside,
			stateSorting: genericSorting,
		}, nil
	case Bazel:
		return transitions{
			stateOutside: bazelOutside,
			stateInScope: bazelInScope,
			stateSorting: bazelSorting,
		}, nil
	case DependencyTable:
		return transitions{
			stateOutside: dependencyOutside,
			stateSorting: dependencySorting,
		}, nil
	case PathOwnership:
		return transitions{
			stateOutside: ownershipOutside,
			stateSorting: ownershipSorting,
		}, nil
	case RustDeriveAlphabetical, RustDeriveCanonical:
		return transitions{
			stateOutside: deriveOutside,
			stateSorting: deriveSorting,
		}, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
}

// scanner walks the lines of one input once, emitting untouched lines and
// sorted regions to out.
type scanner struct {
	patterns *Patterns
	logger   *slog.Logger
	table    transitions
	out      []string
	region   []string
	dialect  Dialect
	state    state
	lineNo   int
	start    int
	depth    int
	skip     bool
}

// run feeds every line through the state machine. End of input closes any
// open region.
func (s *scanner) run(lines []string) []string {
	s.out = make([]string, 0, len(lines))

	for _, line := range lines {
		s.lineNo++
		s.state = s.table[s.state](s, line)
	}

	if s.state == stateSorting {
		s.close()
	}

	return s.out
}

func (s *scanner) emit(line string) {
	s.out = append(s.out, line)
}

func (s *scanner) accumulate(line string) {
	s.region = append(s.region, line)
}

// open starts a region. It must run before the opening line is emitted: the
// ignore-block directive is honored when it is the last line emitted before
// the region.
func (s *scanner) open() {
	s.region = nil
	s.start = s.lineNo
	s.skip = len(s.out) > 0 && s.patterns.IgnoresBlock(s.out[len(s.out)-1:])
}

// close sorts the accumulated region and emits it.
func (s *scanner) close() {
	s.out = append(s.out, s.sortRegion(s.region)...)
	s.region = nil
	s.skip = false
}

func (s *scanner) sortRegion(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}

	log := s.logger.With(
		slog.String("dialect", s.dialect.String()),
		slog.Int("line", s.start),
	)

	if s.skip || s.patterns.IgnoresBlock(lines) {
		log.Debug("region ignored by directive")

		return lines
	}

	if s.dialect.IsRustDerive() {
		out, ok := RenderDerive(s.dialect, lines)
		if !ok {
			log.Debug("derive attribute not matched")
		}

		return out
	}

	b := Segment(s.dialect, lines)
	sortItems(s.dialect, b.Items)

	log.Debug("region sorted", slog.Int("items", len(b.Items)))

	return b.Lines()
}

// track updates the Bazel list depth with line.
func (s *scanner) track(line string) {
	s.depth = max(0, s.depth+bracketDelta(stripComment(line), "[", "]"))
}

func (s *scanner) scope() state {
	if s.depth > 0 {
		return stateInScope
	}

	return stateOutside
}

func genericOutside(s *scanner, line string) state {
	if s.patterns.IsTrigger(line) {
		s.open()
		s.emit(line)

		return stateSorting
	}

	s.emit(line)

	return stateOutside
}

func genericSorting(s *scanner, line string) state {
	switch {
	case s.patterns.IsTrigger(line):
		s.close()
		return genericOutside(s, line)
	case isBlank(line):
		s.close()
		s.emit(line)

		return stateOutside
	}

	s.accumulate(line)

	return stateSorting
}

func bazelOutside(s *scanner, line string) state {
	s.emit(line)
	s.track(line)

	return s.scope()
}

func bazelInScope(s *scanner, line string) state {
	if s.patterns.IsTrigger(line) {
		s.open()
		s.emit(line)

		return stateSorting
	}

	return bazelOutside(s, line)
}

func bazelSorting(s *scanner, line string) state {
	switch {
	case s.patterns.IsTrigger(line):
		s.close()
		return bazelInScope(s, line)
	case isBlank(line), containsCode(stripComment(line), ']'):
		s.close()
		return bazelOutside(s, line)
	}

	s.accumulate(line)
	s.track(line)

	return stateSorting
}

func dependencyOutside(s *scanner, line string) state {
	if s.patterns.DependencyHeader.MatchString(line) {
		s.open()
		s.emit(line)

		return stateSorting
	}

	s.emit(line)

	return stateOutside
}

func dependencySorting(s *scanner, line string) state {
	switch {
	case isBlank(line):
		s.close()
		s.emit(line)

		return stateOutside
	case strings.HasPrefix(stripComment(line), "["):
		// A new table header ends the region and may open the next one.
		s.close()
		return dependencyOutside(s, line)
	}

	s.accumulate(line)

	return stateSorting
}

func ownershipOutside(s *scanner, line string) state {
	if isBlank(line) || IsComment(s.dialect, line) {
		// Comments ahead of a paragraph are its title.
		s.emit(line)
		return stateOutside
	}

	s.open()
	s.accumulate(line)

	return stateSorting
}

func ownershipSorting(s *scanner, line string) state {
	if isBlank(line) {
		s.close()
		s.emit(line)

		return stateOutside
	}

	s.accumulate(line)

	return stateSorting
}

func deriveOutside(s *scanner, line string) state {
	if !s.patterns.DeriveBegin.MatchString(line) {
		s.emit(line)
		return stateOutside
	}

	s.open()
	s.accumulate(line)

	if s.patterns.DeriveEnd.MatchString(line) {
		s.close()
		return stateOutside
	}

	return stateSorting
}

func deriveSorting(s *scanner, line string) state {
	if s.patterns.DeriveBegin.MatchString(line) {
		// The previous attribute never closed; keep it as is.
		s.close()
		return deriveOutside(s, line)
	}

	s.accumulate(line)

	if s.patterns.DeriveEnd.MatchString(line) {
		s.close()
		return stateOutside
	}

	return stateSorting
}
