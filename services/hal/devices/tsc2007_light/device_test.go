package tsc2007_light

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"touchctl-go/drivers/tsc2007"
	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/platform"
	"touchctl-go/services/hal/internal/provider"
	"touchctl-go/types"
)

type recEmitter struct{ evs []core.Event }

func (r *recEmitter) Emit(ev core.Event) bool {
	r.evs = append(r.evs, ev)
	return true
}

func (r *recEmitter) lastLight(t *testing.T) types.LightValue {
	t.Helper()
	if len(r.evs) == 0 {
		t.Fatal("nothing emitted")
	}
	v, ok := r.evs[len(r.evs)-1].Payload.(types.LightValue)
	if !ok {
		t.Fatalf("last payload %T, want LightValue", r.evs[len(r.evs)-1].Payload)
	}
	return v
}

type rig struct {
	dev *Device
	sim *platform.SimTSC2007
	pin *platform.FakePin
	reg *provider.Registry
	pub *recEmitter
}

func newRig(t *testing.T) *rig {
	t.Helper()
	sim := platform.NewSimTSC2007()
	pins := &platform.FakePins{Max: 28}
	reg := provider.New(platform.SimI2C{"i2c1": sim}, pins)
	pub := &recEmitter{}
	dev, err := builder{}.Build(context.Background(), core.BuilderInput{
		ID:     "lamp",
		Type:   "tsc2007_light",
		Params: map[string]any{"bus": "i2c1", "irq_pin": 6},
		Res:    core.Resources{Reg: reg, Pub: pub},
	})
	if err != nil {
		t.Fatal(err)
	}
	d := dev.(*Device)
	d.p.Driver.Configure(tsc2007.Config{ConversionDelay: 1})
	pin, _ := pins.Pin(6)
	return &rig{dev: d, sim: sim, pin: pin, reg: reg, pub: pub}
}

func TestCapabilitiesAdvertiseColorModes(t *testing.T) {
	r := newRig(t)
	caps := r.dev.Capabilities()
	if len(caps) != 1 || caps[0].Kind != types.KindLight || caps[0].Name != "lamp" {
		t.Fatalf("caps = %+v", caps)
	}
	li := caps[0].Info.Detail.(types.LightInfo)
	want := []types.ColorMode{types.ColorModeRGB, types.ColorModeColdWarmWhite, types.ColorModeBrightness}
	if diff := cmp.Diff(want, li.ColorModes); diff != "" {
		t.Fatalf("color modes (-want +got):\n%s", diff)
	}
}

func TestTouchZonesDriveLight(t *testing.T) {
	r := newRig(t)
	if err := r.dev.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := r.pub.lastLight(t); got.On {
		t.Fatal("light should start off")
	}

	r.sim.Touch(0, 500, 300, 1000) // toggle band
	r.pin.Set(true)
	r.dev.Tick(context.Background())
	if !r.pub.lastLight(t).On {
		t.Fatal("toggle zone did not switch the light on")
	}

	r.sim.Touch(1000, 1500, 300, 1000) // color temp band
	r.dev.Tick(context.Background())
	got := r.pub.lastLight(t)
	want := types.LightValue{On: true, Mode: types.ColorModeColdWarmWhite, Brightness: 1, Cold: 0.25, Warm: 0.75}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Fatalf("color temp (-want +got):\n%s", diff)
	}

	n := len(r.pub.evs)
	r.sim.Touch(1000, 4000, 300, 1000) // outside every band
	r.dev.Tick(context.Background())
	if len(r.pub.evs) != n {
		t.Fatal("out-of-band touch emitted")
	}

	r.sim.Touch(1000, 2100, 20, 1000) // too light
	r.dev.Tick(context.Background())
	if len(r.pub.evs) != n {
		t.Fatal("light contact emitted")
	}
}

func TestZoneChannelRules(t *testing.T) {
	r := newRig(t)
	if err := r.dev.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.dev.light.v = types.LightValue{
		On: true, Mode: types.ColorModeRGB, Brightness: 0.8,
		Red: 0.2, Green: 0.4, Blue: 0.6, Cold: 0.3, Warm: 0.7,
	}
	r.pin.Set(true)

	steps := []struct {
		name string
		x, y uint16
		want types.LightValue
	}{
		{"brightness keeps color", 2000, 2500, types.LightValue{
			On: true, Mode: types.ColorModeRGB, Brightness: 0.5,
			Red: 0.2, Green: 0.4, Blue: 0.6, Cold: 0.3, Warm: 0.7,
		}},
		{"color temp zeroes rgb", 1000, 1500, types.LightValue{
			On: true, Mode: types.ColorModeColdWarmWhite, Brightness: 0.5,
			Cold: 0.25, Warm: 0.75,
		}},
		{"brightness keeps white mix", 3000, 2999, types.LightValue{
			On: true, Mode: types.ColorModeColdWarmWhite, Brightness: 0.75,
			Cold: 0.25, Warm: 0.75,
		}},
		{"hue sets rgb and zeroes white mix", 0, 3000, types.LightValue{
			On: true, Mode: types.ColorModeRGB, Brightness: 0.75,
			Red: 1, Green: 0.25, Blue: 0.25,
		}},
		{"brightness clamps", 4095, 2000, types.LightValue{
			On: true, Mode: types.ColorModeRGB, Brightness: 1,
			Red: 1, Green: 0.25, Blue: 0.25,
		}},
	}
	for _, st := range steps {
		n := len(r.pub.evs)
		r.sim.Touch(st.x, st.y, 300, 1000)
		r.dev.Tick(context.Background())
		if len(r.pub.evs) != n+1 {
			t.Fatalf("%s: %d events, want exactly one", st.name, len(r.pub.evs)-n)
		}
		if diff := cmp.Diff(st.want, r.pub.lastLight(t), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", st.name, diff)
		}
	}
}

func TestControlVerbs(t *testing.T) {
	r := newRig(t)
	_ = r.dev.Init(context.Background())

	if res, _ := r.dev.Control(r.dev.addr, "toggle", nil); !res.OK || !r.pub.lastLight(t).On {
		t.Fatalf("toggle: %+v", res)
	}

	res, _ := r.dev.Control(r.dev.addr, "set", map[string]any{"rgb": []float64{2, 0.5, -1}, "brightness": 0.4})
	if !res.OK {
		t.Fatalf("set: %+v", res)
	}
	got := r.pub.lastLight(t)
	want := types.LightValue{On: true, Mode: types.ColorModeRGB, Brightness: 0.4, Red: 1, Green: 0.5}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Fatalf("set (-want +got):\n%s", diff)
	}

	if res, _ := r.dev.Control(r.dev.addr, "set", map[string]any{}); res.Error != errcode.InvalidPayload {
		t.Fatalf("empty set: %+v", res)
	}
	if res, _ := r.dev.Control(r.dev.addr, "set", "not json"); res.Error != errcode.InvalidPayload {
		t.Fatalf("bad set: %+v", res)
	}
	if res, _ := r.dev.Control(r.dev.addr, "blink", nil); res.Error != errcode.Unsupported {
		t.Fatalf("unknown verb: %+v", res)
	}
}

func TestInitFailureAndClose(t *testing.T) {
	r := newRig(t)
	r.sim.SetAbsent(true)
	if err := r.dev.Init(context.Background()); errcode.Of(err) != errcode.NoDevice {
		t.Fatalf("err = %v, want no_device", err)
	}
	if r.pin.Attached() {
		t.Fatal("irq attached after failed init")
	}
	_ = r.dev.Close()
	if _, held := r.reg.PinOwner(6); held {
		t.Fatal("pin still claimed after Close")
	}
}
