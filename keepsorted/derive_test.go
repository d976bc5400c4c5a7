package keepsorted_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/keepsorted/keepsorted"
)

func TestSortTraits(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		traits  []string
		want    []string
		dialect keepsorted.Dialect
	}{
		"alphabetical": {
			dialect: keepsorted.RustDeriveAlphabetical,
			traits:  []string{"PartialEq", "Debug", "Clone", "Eq"},
			want:    []string{"Clone", "Debug", "Eq", "PartialEq"},
		},
		"canonical precedence": {
			dialect: keepsorted.RustDeriveCanonical,
			traits:  []string{"Default", "Debug", "Hash", "PartialOrd", "Ord", "PartialEq", "Eq", "Clone", "Copy"},
			want:    []string{"Copy", "Clone", "Eq", "PartialEq", "Ord", "PartialOrd", "Hash", "Debug", "Default"},
		},
		"canonical unknown traits last": {
			dialect: keepsorted.RustDeriveCanonical,
			traits:  []string{"Serialize", "Debug", "Deserialize", "Clone"},
			want:    []string{"Clone", "Debug", "Deserialize", "Serialize"},
		},
		"other dialects leave order": {
			dialect: keepsorted.Generic,
			traits:  []string{"b", "a"},
			want:    []string{"b", "a"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			keepsorted.SortTraits(tc.dialect, tc.traits)
			assert.Equal(t, tc.want, tc.traits)
		})
	}
}

func TestRenderDerive(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lines []string
		want  []string
		ok    bool
	}{
		"single line": {
			lines: []string{"#[derive(Debug, Clone)]\n"},
			want:  []string{"#[derive(Clone, Debug)]\n"},
			ok:    true,
		},
		"collapses to one line": {
			lines: []string{"  #[derive(\n", "    B,\n", "    A,\n", "  )]\n"},
			want:  []string{"  #[derive(A, B)]\n"},
			ok:    true,
		},
		"trailing comma dropped": {
			lines: []string{"#[derive(B, A,)]\n"},
			want:  []string{"#[derive(A, B)]\n"},
			ok:    true,
		},
		"crlf kept": {
			lines: []string{"#[derive(\r\n", "B, A\r\n", ")]\r\n"},
			want:  []string{"#[derive(A, B)]\r\n"},
			ok:    true,
		},
		"no terminator": {
			lines: []string{"#[derive(B, A)]"},
			want:  []string{"#[derive(A, B)]\n"},
			ok:    true,
		},
		"comment inside": {
			lines: []string{"#[derive(\n", "    B, // why\n", "    A,\n", ")]\n"},
			ok:    false,
		},
		"text after attribute": {
			lines: []string{"#[derive(B, A)] struct S;\n"},
			ok:    false,
		},
		"not an attribute": {
			lines: []string{"#[serde(rename_all = \"snake_case\")]\n"},
			ok:    false,
		},
		"empty": {
			ok: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := keepsorted.RenderDerive(keepsorted.RustDeriveAlphabetical, tc.lines)
			assert.Equal(t, tc.ok, ok)

			if !tc.ok {
				assert.Equal(t, tc.lines, got)

				return
			}

			assert.Equal(t, tc.want, got)
		})
	}
}
