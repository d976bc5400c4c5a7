package keepsorted

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey is the comparable value derived from an [Item].
// Keys order by phase, then lexicographically by tokens; a token sequence
// that is a strict prefix of another sorts first.
type SortKey struct {
	Tokens []string
	Phase  int
}

// Compare returns -1, 0 or +1 comparing k with other.
func (k SortKey) Compare(other SortKey) int {
	return cmp.Or(
		cmp.Compare(k.Phase, other.Phase),
		slices.Compare(k.Tokens, other.Tokens),
	)
}

// KeyFor computes the sort key of it under dialect d.
func KeyFor(d Dialect, it Item) SortKey {
	switch d {
	case Bazel:
		return BazelKey(firstLine(it))
	case DependencyTable:
		return SortKey{Tokens: []string{strings.TrimSpace(strings.Join(it.Code, ""))}}
	case Generic, PathOwnership, RustDeriveAlphabetical, RustDeriveCanonical:
	}

	return SortKey{Tokens: []string{strings.TrimSpace(firstLine(it))}}
}

func firstLine(it Item) string {
	if len(it.Code) == 0 {
		return ""
	}

	return it.Code[0]
}

// BazelKey computes the key buildifier uses for string list elements.
//
// Elements are grouped into phases: plain strings, strings starting with
// ":", "//" and "@", then anything that is not a string literal. Within a
// phase the comment-free text is split at '.', ':' and '"' and compared
// element by element.
func BazelKey(line string) SortKey {
	code := stripComment(line)

	phase := 4

	switch {
	case strings.HasPrefix(code, `":`):
		phase = 1
	case strings.HasPrefix(code, `"//`):
		phase = 2
	case strings.HasPrefix(code, `"@`):
		phase = 3
	case strings.HasPrefix(code, `"`):
		phase = 0
	}

	return SortKey{
		Phase:  phase,
		Tokens: splitKeep(code, ".:\""),
	}
}

// splitKeep splits s at any byte in seps, keeping empty fields.
func splitKeep(s, seps string) []string {
	fields := []string{}
	start := 0

	for i := range len(s) {
		if strings.IndexByte(seps, s[i]) >= 0 {
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}

	return append(fields, s[start:])
}

// sortItems stable-sorts items by their dialect key.
func sortItems(d Dialect, items []Item) {
	type keyed struct {
		key  SortKey
		item Item
	}

	ks := make([]keyed, len(items))
	for i, it := range items {
		ks[i] = keyed{key: KeyFor(d, it), item: it}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		return a.key.Compare(b.key)
	})

	for i, k := range ks {
		items[i] = k.item
	}
}
