package resrobot

import (
	"bytes"
	"encoding/json"
)

// OneOrMany decodes fields that ResRobot sends as a bare object when there is a
// single entry and as an array otherwise. It always resolves to a slice.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*o = nil
		return nil
	case data[0] == '[':
		var many []T
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*o = many
		return nil
	default:
		var single T
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*o = OneOrMany[T]{single}
		return nil
	}
}

func (o OneOrMany[T]) First() (T, bool) {
	var empty T
	if len(o) == 0 {
		return empty, false
	}
	return o[0], true
}
