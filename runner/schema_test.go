package runner_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/keepsorted/runner"
)

func TestSchemaJSON(t *testing.T) {
	t.Parallel()

	out, err := runner.SchemaJSON()
	require.NoError(t, err)

	var doc struct {
		Properties map[string]struct {
			Description string `json:"description"`
		} `json:"properties"`
		Title string `json:"title"`
	}

	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "keepsorted settings", doc.Title)
	assert.ElementsMatch(t, []string{"features", "exclude", "jobs", "verifyToml"}, keys(doc.Properties))
	assert.Contains(t, doc.Properties["exclude"].Description, "doublestar")
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}
