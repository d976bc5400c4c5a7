package runner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/keepsorted/runner"
)

func TestVerifyTOML(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err    error
		before string
		after  string
	}{
		"reordered keys": {
			before: "[dependencies]\nb = \"1\"\na = { version = \"2\", features = [\"x\"] }\n",
			after:  "[dependencies]\na = { version = \"2\", features = [\"x\"] }\nb = \"1\"\n",
		},
		"moved comment": {
			before: "[dependencies]\n# about b\nb = \"1\"\na = \"2\"\n",
			after:  "[dependencies]\na = \"2\"\n# about b\nb = \"1\"\n",
		},
		"changed value": {
			before: "[dependencies]\na = \"1\"\n",
			after:  "[dependencies]\na = \"2\"\n",
			err:    runner.ErrSemanticChange,
		},
		"output does not decode": {
			before: "a = 1\n",
			after:  "a = \n",
			err:    runner.ErrSemanticChange,
		},
		"input does not decode": {
			before: "a = \n",
			after:  "= a\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := runner.VerifyTOML([]byte(tc.before), []byte(tc.after))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
		})
	}
}
