package runner

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema returns the JSON Schema of [Settings].
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("infer settings schema: %w", err)
	}

	s.Title = "keepsorted settings"
	s.Description = "Settings read from " + DefaultSettingsFile + "."

	return s, nil
}

// SchemaJSON returns the indented JSON encoding of [Schema], newline
// terminated.
func SchemaJSON() ([]byte, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return append(out, '\n'), nil
}
