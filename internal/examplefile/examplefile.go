// Package examplefile reads and writes the JSON examples file format shared
// by cmd/pbesynth and server: a plain array of {"input":..., "output":...}
// pairs, using internal/lang's JSON conversion for the value fields. This
// has no precedent in original_source/, which takes examples as in-process
// Python tuples; a file format is purely a consequence of giving the core
// a command-line and network front end.
package examplefile

import (
	"encoding/json"
	"fmt"

	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/lang"
)

// jsonExample is the on-the-wire shape of one example pair, following the
// jsonNPC/jsonRoute pattern of tunaq's internal/game/marshaling.go: a
// plain JSON-tagged struct converted to/from the real type by a pair of
// dedicated methods rather than custom MarshalJSON/UnmarshalJSON.
type jsonExample struct {
	Input  any `json:"input"`
	Output any `json:"output"`
}

func (je jsonExample) toExample() (evaluator.Example, error) {
	in, err := lang.FromJSON(je.Input)
	if err != nil {
		return evaluator.Example{}, fmt.Errorf("input: %w", err)
	}
	out, err := lang.FromJSON(je.Output)
	if err != nil {
		return evaluator.Example{}, fmt.Errorf("output: %w", err)
	}
	return evaluator.Example{Input: in, Output: out}, nil
}

func fromExample(ex evaluator.Example) (jsonExample, error) {
	in, err := lang.ToJSON(ex.Input)
	if err != nil {
		return jsonExample{}, fmt.Errorf("input: %w", err)
	}
	out, err := lang.ToJSON(ex.Output)
	if err != nil {
		return jsonExample{}, fmt.Errorf("output: %w", err)
	}
	return jsonExample{Input: in, Output: out}, nil
}

// Parse decodes an examples file's contents into an ordered list of
// evaluator.Example.
func Parse(data []byte) ([]evaluator.Example, error) {
	var raw []jsonExample
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding examples: %w", err)
	}

	examples := make([]evaluator.Example, len(raw))
	for i, je := range raw {
		ex, err := je.toExample()
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		examples[i] = ex
	}
	return examples, nil
}

// Format encodes a list of examples back into the file format, for
// callers (the job service) that need to round-trip a submitted examples
// payload into storage.
func Format(examples []evaluator.Example) ([]byte, error) {
	raw := make([]jsonExample, len(examples))
	for i, ex := range examples {
		je, err := fromExample(ex)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		raw[i] = je
	}
	return json.MarshalIndent(raw, "", "  ")
}
