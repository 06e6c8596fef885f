// services/hal/internal/util/util.go
package util

import (
	"encoding/json"
)

// DecodeJSON converts a JSON-like payload (bytes, string, map or typed
// value) into dst by way of a JSON round-trip.
func DecodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}
