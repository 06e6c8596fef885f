package core

import (
	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/util"
)

// As[T] converts a control payload to T. Typed values pass through; JSON-like
// maps (as produced by bridges or config) are decoded. A nil payload yields
// the zero value of T.
func As[T any](v any) (T, errcode.Code) {
	var zero T
	if v == nil {
		return zero, ""
	}
	if t, ok := v.(T); ok {
		return t, ""
	}
	var out T
	if err := util.DecodeJSON(v, &out); err != nil {
		return zero, errcode.InvalidPayload
	}
	return out, ""
}
