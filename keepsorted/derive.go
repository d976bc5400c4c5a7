package keepsorted

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Line length limits for re-rendered derive attributes.
const (
	// DeriveSingleLineMax is the longest single-line attribute, including
	// indentation and newline.
	DeriveSingleLineMax = 97
	// DeriveTraitLineMax is the longest trait line of the three-line form,
	// including indentation and trailing comma but not the newline.
	DeriveTraitLineMax = 101
)

// canonicalTraits is the precedence used by [RustDeriveCanonical].
var canonicalTraits = []string{
	"Copy",
	"Clone",
	"Eq",
	"PartialEq",
	"Ord",
	"PartialOrd",
	"Hash",
	"Debug",
	"Display",
	"Default",
}

// SortTraits orders derive trait names in place for dialect d.
func SortTraits(d Dialect, traits []string) {
	switch d {
	case RustDeriveCanonical:
		slices.SortStableFunc(traits, func(a, b string) int {
			return cmp.Or(
				cmp.Compare(canonicalRank(a), canonicalRank(b)),
				strings.Compare(a, b),
			)
		})
	case RustDeriveAlphabetical:
		slices.Sort(traits)
	case Generic, Bazel, DependencyTable, PathOwnership:
	}
}

func canonicalRank(trait string) int {
	if i := slices.Index(canonicalTraits, trait); i >= 0 {
		return i
	}

	return len(canonicalTraits)
}

// RenderDerive rewrites the derive attribute spanning lines with its traits
// sorted for dialect d. The second result is false when lines do not hold a
// complete #[derive(...)] attribute, in which case lines should be kept.
func RenderDerive(d Dialect, lines []string) ([]string, bool) {
	if len(lines) == 0 {
		return lines, false
	}

	eol := "\n"
	if strings.HasSuffix(lines[0], "\r\n") {
		eol = "\r\n"
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(strings.TrimRight(line, "\r\n"))
	}

	sb.WriteByte('\n')

	joined := sb.String()
	trimmed := strings.TrimSpace(joined)

	start := strings.Index(trimmed, "#[derive(")
	if start < 0 {
		return lines, false
	}

	end := strings.Index(trimmed[start:], ")]")
	if end < 0 || start+end+len(")]") != len(trimmed) {
		return lines, false
	}

	var traits []string

	for t := range strings.SplitSeq(trimmed[start+len("#[derive("):start+end], ",") {
		t = strings.TrimSpace(t)
		if strings.Contains(t, "//") || strings.Contains(t, "/*") {
			// Comments would not survive joining the traits.
			return lines, false
		}

		if t != "" {
			traits = append(traits, t)
		}
	}

	SortTraits(d, traits)

	indent := joined[:strings.Index(joined, trimmed)]
	suffix := joined[strings.LastIndex(joined, trimmed)+len(trimmed):]
	list := strings.Join(traits, ", ")

	single := indent + "#[derive(" + list + ")]" + suffix
	if utf8.RuneCountInString(single) <= DeriveSingleLineMax {
		return []string{withEOL(single, eol)}, true
	}

	out := []string{indent + "#[derive(" + eol}

	middle := indent + "    " + list + ","
	if utf8.RuneCountInString(middle) <= DeriveTraitLineMax {
		out = append(out, middle+eol)
	} else {
		for _, t := range traits {
			out = append(out, indent+"    "+t+","+eol)
		}
	}

	return append(out, indent+")]"+eol), true
}

func withEOL(line, eol string) string {
	if eol == "\n" {
		return line
	}

	return strings.TrimSuffix(line, "\n") + eol
}
