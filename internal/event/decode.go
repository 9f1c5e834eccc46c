package event

import "encoding/json"

// DecodePayload returns an event payload as T. In-process publishers store
// T or *T directly; anything else (a map from a serialized event) goes
// through a JSON round trip.
func DecodePayload[T any](input any) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
