package keepsorted_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/keepsorted/keepsorted"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lines   []string
		want    keepsorted.Block
		dialect keepsorted.Dialect
	}{
		"plain": {
			dialect: keepsorted.Generic,
			lines:   []string{"b\n", "a\n"},
			want: keepsorted.Block{Items: []keepsorted.Item{
				{Code: []string{"b\n"}},
				{Code: []string{"a\n"}},
			}},
		},
		"comments attach downwards": {
			dialect: keepsorted.Generic,
			lines:   []string{"# about b\n", "// more\n", "b\n", "a\n", "# tail\n"},
			want: keepsorted.Block{
				Items: []keepsorted.Item{
					{Comments: []string{"# about b\n", "// more\n"}, Code: []string{"b\n"}},
					{Code: []string{"a\n"}},
				},
				Trailing: []string{"# tail\n"},
			},
		},
		"only comments": {
			dialect: keepsorted.Bazel,
			lines:   []string{"# x\n"},
			want:    keepsorted.Block{Trailing: []string{"# x\n"}},
		},
		"multi-line value": {
			dialect: keepsorted.DependencyTable,
			lines: []string{
				"b = { version = \"1\",\n",
				"  features = [\"x\"] }\n",
				"a = \"1\"\n",
			},
			want: keepsorted.Block{Items: []keepsorted.Item{
				{Code: []string{"b = { version = \"1\",\n", "  features = [\"x\"] }\n"}},
				{Code: []string{"a = \"1\"\n"}},
			}},
		},
		"bracket in string": {
			dialect: keepsorted.DependencyTable,
			lines:   []string{"b = \"[\"\n", "a = \"1\"\n"},
			want: keepsorted.Block{Items: []keepsorted.Item{
				{Code: []string{"b = \"[\"\n"}},
				{Code: []string{"a = \"1\"\n"}},
			}},
		},
		"unterminated value": {
			dialect: keepsorted.DependencyTable,
			lines:   []string{"# c\n", "b = [\n", "  \"x\",\n"},
			want: keepsorted.Block{Items: []keepsorted.Item{
				{Comments: []string{"# c\n"}, Code: []string{"b = [\n", "  \"x\",\n"}},
			}},
		},
		"brackets span lines only in cargo": {
			dialect: keepsorted.Generic,
			lines:   []string{"b = [\n", "a\n"},
			want: keepsorted.Block{Items: []keepsorted.Item{
				{Code: []string{"b = [\n"}},
				{Code: []string{"a\n"}},
			}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := keepsorted.Segment(tc.dialect, tc.lines)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.lines, got.Lines())
		})
	}
}
