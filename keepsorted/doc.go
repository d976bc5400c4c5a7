// Package keepsorted sorts hand-maintained lists inside source files without
// parsing the host format.
//
// Input is a sequence of lines, each keeping its terminator. A [Sorter] walks
// the lines once with a small state machine per [Dialect], finds regions
// that are explicitly marked for sorting, reorders the entries of each region
// and returns every other line byte for byte.
//
// # Dialects
//
// [Generic] regions start after a trigger comment and end at a blank line:
//
//	# Keep sorted.
//	b
//	a
//
// [Bazel] regions start at a trigger comment inside a list literal and end at
// the closing bracket or a blank line. Entries order like buildifier orders
// string lists: plain strings, then ":" labels, "//" labels, "@" labels and
// finally anything that is not a string literal (see [BazelKey]).
//
// [DependencyTable] regions are Cargo.toml dependency tables such as
// [dependencies], [dev-dependencies] or [workspace.dependencies]. No trigger
// is needed; the region ends at a blank line or the next table header.
//
// [PathOwnership] regions are the paragraphs of .gitignore and CODEOWNERS
// files. A comment ahead of a paragraph is its title and never moves.
//
// [RustDeriveAlphabetical] and [RustDeriveCanonical] sort the traits inside
// #[derive(...)] attributes and re-render the attribute within the line
// length limits [DeriveSingleLineMax] and [DeriveTraitLineMax].
//
// # Comments
//
// Comment lines directly above an entry move with it. Comments after the last
// entry of a region stay at the end. Block comments are not supported.
//
// # Directives
//
// A "# keepsorted: ignore file" comment anywhere in the input disables
// sorting for the whole input. A "# keepsorted: ignore block" comment on the
// line before a region, or anywhere inside it, disables sorting for that
// region. Both forms also accept "//".
//
// Typical usage:
//
//	s := keepsorted.NewSorter()
//	out, err := s.Sort(keepsorted.DialectForPath(path, features), src)
package keepsorted
