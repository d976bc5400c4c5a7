package runner

import (
	"fmt"
	"reflect"

	"github.com/pelletier/go-toml/v2"
)

// VerifyTOML checks that before and after decode to the same TOML document.
//
// Input that does not decode cannot be verified and passes. Sorted output
// that does not decode, or decodes to a different document, fails with
// [ErrSemanticChange].
func VerifyTOML(before, after []byte) error {
	var want map[string]any

	err := toml.Unmarshal(before, &want)
	if err != nil {
		return nil //nolint:nilerr // Unparseable input is sorted as plain text.
	}

	var got map[string]any

	err = toml.Unmarshal(after, &got)
	if err != nil {
		return fmt.Errorf("%w: sorted output does not decode: %w", ErrSemanticChange, err)
	}

	if !reflect.DeepEqual(want, got) {
		return ErrSemanticChange
	}

	return nil
}
