package core

import (
	"context"
	"testing"
	"time"

	"touchctl-go/bus"
	"touchctl-go/errcode"
	"touchctl-go/types"
)

func TestAs(t *testing.T) {
	v, code := As[types.TSC2007Params](types.TSC2007Params{Bus: "i2c0"})
	if code != "" || v.Bus != "i2c0" {
		t.Fatalf("typed: %+v %q", v, code)
	}
	v, code = As[types.TSC2007Params](map[string]any{"bus": "i2c1", "irq_pin": 4})
	if code != "" || v.Bus != "i2c1" || v.IRQPin == nil || *v.IRQPin != 4 {
		t.Fatalf("map: %+v %q", v, code)
	}
	if _, code = As[types.TSC2007Params]("{"); code != errcode.InvalidPayload {
		t.Fatalf("bad json code = %q", code)
	}
	if _, code = As[types.TSC2007Params](nil); code != "" {
		t.Fatalf("nil code = %q", code)
	}
}

func TestRegisterBuilderPanicsOnDuplicate(t *testing.T) {
	RegisterBuilder("core_test_dup", nopBuilder{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	RegisterBuilder("core_test_dup", nopBuilder{})
}

func TestTopics(t *testing.T) {
	if got := CapCtrl("light", "light", "lamp", "toggle").String(); got != "hal/cap/light/light/lamp/control/toggle" {
		t.Fatalf("CapCtrl = %s", got)
	}
	if got := CapValue("touch", "x", "p").String(); got != "hal/cap/touch/x/p/value" {
		t.Fatalf("CapValue = %s", got)
	}
}

// ---- loop ----

type nopBuilder struct{}

func (nopBuilder) Build(context.Context, BuilderInput) (Device, error) { return nil, errcode.Unsupported }

type echoDevice struct {
	id    string
	pub   EventEmitter
	ticks int
}

func (d *echoDevice) ID() string { return d.id }
func (d *echoDevice) Capabilities() []CapabilitySpec {
	return []CapabilitySpec{{Kind: types.KindTouchX, Info: types.Info{Driver: "echo"}}}
}
func (d *echoDevice) Init(context.Context) error { return nil }
func (d *echoDevice) Tick(context.Context)       { d.ticks++ }
func (d *echoDevice) Close() error               { return nil }
func (d *echoDevice) Control(a CapAddr, verb string, _ any) (EnqueueResult, error) {
	if verb != "read" {
		return EnqueueResult{Error: errcode.Unsupported}, nil
	}
	d.pub.Emit(Event{Addr: a, Payload: types.NumberValue{Value: 7}})
	return EnqueueResult{OK: true}, nil
}

type echoBuilder struct{}

func (echoBuilder) Build(_ context.Context, in BuilderInput) (Device, error) {
	return &echoDevice{id: in.ID, pub: in.Res.Pub}, nil
}

func init() { RegisterBuilder("core_test_echo", echoBuilder{}) }

func TestLoopRoutesControl(t *testing.T) {
	b := bus.NewBus(32)
	client := b.NewConnection("client")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	state := client.Subscribe(TopicHALState())
	go NewHAL(b.NewConnection("hal"), Resources{}).Run(ctx)
	select {
	case <-state.Channel():
	case <-time.After(time.Second):
		t.Fatal("hal never published its state")
	}

	rctx, rcancel := context.WithTimeout(ctx, time.Second)
	defer rcancel()

	// Controls before config are refused.
	rep, err := client.RequestWait(rctx, client.NewMessage(CapCtrl("touch", "x", "e1", "read"), nil, false))
	if err != nil {
		t.Fatal(err)
	}
	if r, _ := rep.Payload.(types.ErrorReply); r.Error != string(errcode.HALNotReady) {
		t.Fatalf("reply = %#v", rep.Payload)
	}

	val := client.Subscribe(CapValue("touch", "x", "e1"))
	client.Publish(client.NewMessage(TopicConfigHAL(), types.HALConfig{Devices: []types.HALDevice{
		{ID: "e1", Type: "core_test_echo"},
		{ID: "missing", Type: "no_such_type"},
	}}, true))

	// Retry until the config has been applied.
	deadline := time.Now().Add(time.Second)
	for {
		rep, err = client.RequestWait(rctx, client.NewMessage(CapCtrl("touch", "x", "e1", "read"), nil, false))
		if err != nil {
			t.Fatal(err)
		}
		if r, ok := rep.Payload.(types.OKReply); ok && r.OK {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("last reply %#v", rep.Payload)
		}
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case m := <-val.Channel():
		if m.Payload != (types.NumberValue{Value: 7}) {
			t.Fatalf("value = %#v", m.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no value published")
	}

	rep, _ = client.RequestWait(rctx, client.NewMessage(CapCtrl("touch", "x", "e1", "poke"), nil, false))
	if r, _ := rep.Payload.(types.ErrorReply); r.Error != string(errcode.Unsupported) {
		t.Fatalf("reply = %#v", rep.Payload)
	}
	rep, _ = client.RequestWait(rctx, client.NewMessage(CapCtrl("touch", "x", "nobody", "read"), nil, false))
	if r, _ := rep.Payload.(types.ErrorReply); r.Error != string(errcode.UnknownCapability) {
		t.Fatalf("reply = %#v", rep.Payload)
	}
}
