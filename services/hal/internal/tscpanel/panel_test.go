package tscpanel

import (
	"errors"
	"testing"
	"time"

	"touchctl-go/drivers/tsc2007"
	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/platform"
	"touchctl-go/services/hal/internal/provider"
)

var tscConfigFast = tsc2007.Config{ConversionDelay: time.Microsecond}

func TestParseParamsDefaults(t *testing.T) {
	c, err := ParseParams("panel0", map[string]any{"bus": "i2c1", "irq_pin": 17})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Bus: "i2c1", Addr: 0x48, IRQPin: 17, Every: 20 * time.Millisecond, Name: "panel0"}
	if c != want {
		t.Fatalf("got %+v, want %+v", c, want)
	}

	c, err = ParseParams("p", `{"bus":"i2c0","addr":73,"irq_pin":3,"poll_ms":50,"name":"wall"}`)
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != 73 || c.Every != 50*time.Millisecond || c.Name != "wall" {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestParseParamsInvalid(t *testing.T) {
	for _, raw := range []any{
		nil,
		map[string]any{"irq_pin": 1},
		map[string]any{"bus": "i2c0"},
		`{"bus":"i2c0","irq_pin":null}`,
		map[string]any{"bus": "i2c0", "irq_pin": -1},
		`{"bus": 5}`,
	} {
		if _, err := ParseParams("x", raw); errcode.Of(err) != errcode.InvalidParams {
			t.Errorf("%v: err = %v, want invalid_params", raw, err)
		}
	}
}

func TestMissingIRQPinClaimsNothing(t *testing.T) {
	reg := provider.New(platform.SimI2C{"i2c0": platform.NewSimTSC2007()}, &platform.FakePins{Max: 28})
	_, err := Open(core.BuilderInput{
		ID:     "panel",
		Params: map[string]any{"bus": "i2c0"},
		Res:    core.Resources{Reg: reg},
	})
	var e *errcode.E
	if !errors.As(err, &e) || e.C != errcode.InvalidParams || e.Msg != "irq_pin required" {
		t.Fatalf("err = %v, want invalid_params: irq_pin required", err)
	}
	if _, held := reg.PinOwner(0); held {
		t.Fatal("GPIO0 claimed for a config without irq_pin")
	}
	if n := reg.BusUsers("i2c0"); n != 0 {
		t.Fatalf("bus users = %d, want 0", n)
	}
}

func TestOpenReleasesBusWhenPinTaken(t *testing.T) {
	reg := provider.New(platform.SimI2C{"i2c0": platform.NewSimTSC2007()}, &platform.FakePins{Max: 28})
	if _, err := reg.ClaimPin("other", 4); err != nil {
		t.Fatal(err)
	}
	in := core.BuilderInput{
		ID:     "panel",
		Params: map[string]any{"bus": "i2c0", "irq_pin": 4},
		Res:    core.Resources{Reg: reg},
	}
	if _, err := Open(in); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("err = %v, want pin_in_use", err)
	}
	if n := reg.BusUsers("i2c0"); n != 0 {
		t.Fatalf("bus users = %d, want 0", n)
	}

	reg.ReleasePin("other", 4)
	p, err := Open(in)
	if err != nil {
		t.Fatal(err)
	}
	p.Release()
	if _, held := reg.PinOwner(4); held || reg.BusUsers("i2c0") != 0 {
		t.Fatal("claims not released")
	}
}

func TestBusFaultEdges(t *testing.T) {
	sim := platform.NewSimTSC2007()
	reg := provider.New(platform.SimI2C{"i2c0": sim}, &platform.FakePins{Max: 28})
	p, err := Open(core.BuilderInput{
		ID:     "panel",
		Params: map[string]any{"bus": "i2c0", "irq_pin": 1},
		Res:    core.Resources{Reg: reg},
	})
	if err != nil {
		t.Fatal(err)
	}
	p.Driver.Configure(tscConfigFast)

	sim.SetAbsent(true)
	p.Driver.ReadTouch()
	if changed, err := p.BusFault(); err == nil || !changed {
		t.Fatalf("first fault: err=%v changed=%t", err, changed)
	}
	p.Driver.ReadTouch()
	if changed, _ := p.BusFault(); changed {
		t.Fatal("repeated fault reported as a change")
	}
	sim.SetAbsent(false)
	p.Driver.ReadTouch()
	if changed, err := p.BusFault(); err != nil || !changed {
		t.Fatalf("recovery: err=%v changed=%t", err, changed)
	}
}
