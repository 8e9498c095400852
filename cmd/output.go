package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"gopkg.in/yaml.v3"
)

// outputFormat holds the structured output flags of a command
type outputFormat struct {
	JSON bool
	Toon bool
	YAML bool
}

// encode renders v in the selected structured format.
// ok is false when no structured format was requested.
func (f outputFormat) encode(v any) (out string, ok bool, err error) {
	switch {
	case f.JSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(b), true, nil

	case f.Toon:
		encoded, err := gotoon.Encode(v)
		if err != nil {
			return "", true, fmt.Errorf("failed to encode Toon: %w", err)
		}
		return encoded, true, nil

	case f.YAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", true, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(b), true, nil
	}

	return "", false, nil
}

// print writes v in the selected structured format and reports whether it did
func (f outputFormat) print(v any) (bool, error) {
	out, ok, err := f.encode(v)
	if err != nil || !ok {
		return ok, err
	}
	fmt.Println(out)
	return true, nil
}
