package util

import (
	"testing"

	"touchctl-go/types"
)

func TestDecodeJSON(t *testing.T) {
	pin := 17
	for name, in := range map[string]any{
		"bytes":  []byte(`{"bus":"i2c1","addr":72,"irq_pin":17}`),
		"string": `{"bus":"i2c1","addr":72,"irq_pin":17}`,
		"map":    map[string]any{"bus": "i2c1", "addr": 72, "irq_pin": 17},
		"typed":  types.TSC2007Params{Bus: "i2c1", Addr: 0x48, IRQPin: &pin},
	} {
		var p types.TSC2007Params
		if err := DecodeJSON(in, &p); err != nil {
			t.Fatalf("%s: decode failed: %v", name, err)
		}
		if p.Bus != "i2c1" || p.Addr != 0x48 || p.IRQPin == nil || *p.IRQPin != 17 {
			t.Fatalf("%s: unexpected result: %+v", name, p)
		}
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	var p types.TSC2007Params
	if err := DecodeJSON(`{"irq_pin":"seventeen"}`, &p); err == nil {
		t.Fatal("expected type error")
	}
}
