// Package runner applies a [keepsorted.Sorter] to files on disk.
//
// A [Runner] expands its arguments into files, walking directories and
// honoring exclude patterns, sorts the files in parallel and then acts on
// the results according to its [Mode]: write changed files back, list them,
// print a unified diff or only report whether anything is unsorted.
//
// Changed files are written atomically through a temporary file in the same
// directory. Cargo.toml files are decoded before and after sorting and are
// never written when their decoded content would change (see [VerifyTOML]).
//
// Defaults for the CLI flags may come from a .keepsorted.yaml file, see
// [Settings] and [Schema].
package runner
