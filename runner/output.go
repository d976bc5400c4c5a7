package runner

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Diff colors ignore the global TTY detection of [color.NoColor]; the
// caller decides through [WithColor].
var (
	diffHeader = forcedColor(color.Bold)
	diffHunk   = forcedColor(color.FgCyan)
	diffAdd    = forcedColor(color.FgGreen)
	diffDel    = forcedColor(color.FgRed)
)

func forcedColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()

	return c
}

func (r *Runner) report(res Result) error {
	return r.emit(r.mode, res)
}

func (r *Runner) emit(mode Mode, res Result) error {
	var err error

	switch mode {
	case ModeWrite:
		if res.Changed() {
			r.logger.Info("sorted file", slog.String("path", res.Path))
		}

	case ModeList:
		if res.Changed() {
			_, err = fmt.Fprintln(r.out, res.Path)
		}

	case ModeDiff:
		if res.Changed() {
			err = r.writeDiff(res)
		}

	case ModeCheck:
		if res.Changed() {
			r.logger.Warn("file is not sorted", slog.String("path", res.Path))
		}

	case ModePrint:
		_, err = r.out.Write(res.After)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (r *Runner) writeDiff(res Result) error {
	diff, err := Diff(res.Path, res.Before, res.After)
	if err != nil {
		return err
	}

	if r.color {
		diff = colorize(diff)
	}

	_, err = io.WriteString(r.out, diff)

	return err
}

// Diff renders a unified diff with three lines of context between the
// original and sorted content of the file at name.
func Diff(name string, before, after []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}

	return diff, nil
}

func colorize(diff string) string {
	var sb strings.Builder

	for line := range strings.SplitAfterSeq(diff, "\n") {
		text, eol := strings.CutSuffix(line, "\n")

		c := colorFor(text)
		if c == nil {
			sb.WriteString(line)

			continue
		}

		sb.WriteString(c.Sprint(text))

		if eol {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func colorFor(line string) *color.Color {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return diffHeader
	case strings.HasPrefix(line, "@@"):
		return diffHunk
	case strings.HasPrefix(line, "+"):
		return diffAdd
	case strings.HasPrefix(line, "-"):
		return diffDel
	}

	return nil
}
