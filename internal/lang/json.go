package lang

import (
	"encoding/json"
	"fmt"
)

// FromJSON converts a decoded JSON value (as produced by
// json.Unmarshal(data, &v) into an interface{}) into a Value: JSON numbers
// become IntValue (fractional JSON numbers are rejected, since the value
// algebra has no float type), booleans become BoolValue, strings become
// StrValue, arrays become ListValue, and null is rejected - callers
// composing an examples file have no way to mean "no value" other than
// simply omitting the pair.
func FromJSON(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not a valid value")
	case bool:
		return BoolValue(t), nil
	case string:
		return StrValue(t), nil
	case float64:
		if t != float64(int64(t)) {
			return nil, fmt.Errorf("%v is not an integer", t)
		}
		return IntValue(int64(t)), nil
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return nil, fmt.Errorf("%s is not an integer", t.String())
		}
		return IntValue(i), nil
	case []any:
		list := make(ListValue, len(t))
		for i, elem := range t {
			ev, err := FromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			list[i] = ev
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value of type %T", v)
	}
}

// ToJSON converts a Value back into plain Go data suitable for
// json.Marshal: the inverse of FromJSON for every Value that can appear in
// an evaluation result. Callables have no JSON representation and are
// rejected.
func ToJSON(v Value) (any, error) {
	switch t := v.(type) {
	case IntValue:
		return int64(t), nil
	case BoolValue:
		return bool(t), nil
	case StrValue:
		return string(t), nil
	case ListValue:
		out := make([]any, len(t))
		for i, elem := range t {
			jv, err := ToJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = jv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of type %T has no JSON representation", v)
	}
}
