package keepsorted

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrUnknownDialect indicates an unrecognized dialect.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrUnknownFeature indicates an unrecognized opt-in feature name.
	ErrUnknownFeature = errors.New("unknown feature")
)

// Dialect selects the region detection and sort key rules for one input.
type Dialect int

const (
	// Generic sorts runs of lines following a "Keep sorted." comment.
	Generic Dialect = iota
	// Bazel sorts string lists in BUILD and .bzl files.
	Bazel
	// DependencyTable sorts Cargo.toml dependency tables.
	DependencyTable
	// PathOwnership sorts .gitignore and CODEOWNERS paragraphs.
	PathOwnership
	// RustDeriveAlphabetical sorts traits in #[derive(...)] alphabetically.
	RustDeriveAlphabetical
	// RustDeriveCanonical sorts traits in #[derive(...)] by a fixed
	// precedence of standard traits, then alphabetically.
	RustDeriveCanonical
)

var dialectNames = map[Dialect]string{
	Generic:                "generic",
	Bazel:                  "bazel",
	DependencyTable:        "cargo-toml",
	PathOwnership:          "path-ownership",
	RustDeriveAlphabetical: "rust-derive-alphabetical",
	RustDeriveCanonical:    "rust-derive-canonical",
}

// String returns the flag name of d.
func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}

	return fmt.Sprintf("Dialect(%d)", int(d))
}

// IsRustDerive reports whether d is one of the derive attribute dialects.
func (d Dialect) IsRustDerive() bool {
	return d == RustDeriveAlphabetical || d == RustDeriveCanonical
}

// ParseDialect parses a dialect name as returned by [Dialect.String].
func ParseDialect(name string) (Dialect, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for d, n := range dialectNames {
		if n == name {
			return d, nil
		}
	}

	return Generic, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// GetAllDialectStrings returns all dialect names in declaration order.
func GetAllDialectStrings() []string {
	names := make([]string, 0, len(dialectNames))
	for d := Generic; d <= RustDeriveCanonical; d++ {
		names = append(names, d.String())
	}

	return names
}

// Feature names accepted by [ParseFeatures].
const (
	FeatureGitignore              = "gitignore"
	FeatureCodeOwners             = "codeowners"
	FeatureRustDeriveAlphabetical = "rust-derive-alphabetical"
	FeatureRustDeriveCanonical    = "rust-derive-canonical"
)

// GetAllFeatureStrings returns all opt-in feature names.
func GetAllFeatureStrings() []string {
	return []string{
		FeatureGitignore,
		FeatureCodeOwners,
		FeatureRustDeriveAlphabetical,
		FeatureRustDeriveCanonical,
	}
}

// Features enables the dialects that are off by default.
type Features struct {
	Gitignore  bool
	CodeOwners bool
	// RustDerive is the derive dialect used for .rs files, or [Generic] when
	// Rust files should be treated like any other file.
	RustDerive Dialect
}

// ParseFeatures builds [Features] from feature names. When both Rust derive
// variants are named, the last one wins.
func ParseFeatures(names []string) (Features, error) {
	var f Features

	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case FeatureGitignore:
			f.Gitignore = true
		case FeatureCodeOwners:
			f.CodeOwners = true
		case FeatureRustDeriveAlphabetical:
			f.RustDerive = RustDeriveAlphabetical
		case FeatureRustDeriveCanonical:
			f.RustDerive = RustDeriveCanonical
		default:
			return Features{}, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
	}

	return f, nil
}

// DialectForPath classifies a file by its name.
func DialectForPath(path string, f Features) Dialect {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	switch {
	case slices.Contains([]string{"bazel", "bzl", "BUILD", "WORKSPACE"}, ext),
		base == "BUILD", base == "WORKSPACE":
		return Bazel
	case base == "Cargo.toml":
		return DependencyTable
	case base == ".gitignore" && f.Gitignore,
		base == "CODEOWNERS" && f.CodeOwners:
		return PathOwnership
	case ext == "rs" && f.RustDerive.IsRustDerive():
		return f.RustDerive
	}

	return Generic
}
