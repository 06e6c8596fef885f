package tsc2007_sensor

import (
	"context"
	"time"

	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/touch"
	"touchctl-go/services/hal/internal/tscpanel"
	"touchctl-go/types"
	"touchctl-go/x/logx"
)

var log = logx.New("tsc2007_sensor")

var axisKinds = [3]types.Kind{types.KindTouchX, types.KindTouchY, types.KindPressure}

// Device publishes x, y and pressure as three touch capabilities.
type Device struct {
	id    string
	p     *tscpanel.Panel
	pub   core.EventEmitter
	unit  *touch.Unit
	sinks [3]*numberSink
}

func (d *Device) ID() string               { return d.id }
func (d *Device) TickEvery() time.Duration { return d.p.Every }

func (d *Device) Capabilities() []core.CapabilitySpec {
	out := make([]core.CapabilitySpec, 0, len(axisKinds))
	for _, k := range axisKinds {
		ti := d.p.Info()
		ti.Axis = string(k)
		out = append(out, core.CapabilitySpec{
			Domain: types.DomainTouch,
			Kind:   k,
			Name:   d.p.Name,
			Info:   types.Info{SchemaVersion: 1, Driver: "tsc2007", Detail: ti},
		})
	}
	return out
}

func (d *Device) Init(ctx context.Context) error {
	return d.unit.Setup(d.p.Pin)
}

func (d *Device) Tick(ctx context.Context) {
	d.unit.Tick()
	if changed, err := d.p.BusFault(); changed && err != nil {
		log.Warnf("%s: bus error: %v", d.id, err)
		for _, s := range d.sinks {
			d.pub.Emit(core.Event{Addr: s.addr, Err: string(errcode.IOError)})
		}
	}
}

func (d *Device) Control(addr core.CapAddr, verb string, _ any) (core.EnqueueResult, error) {
	if verb != "read" {
		return core.EnqueueResult{OK: false, Error: errcode.Unsupported}, nil
	}
	for _, s := range d.sinks {
		if s.addr.Kind == addr.Kind {
			s.republish()
			return core.EnqueueResult{OK: true}, nil
		}
	}
	return core.EnqueueResult{OK: false, Error: errcode.UnknownCapability}, nil
}

func (d *Device) Close() error {
	err := d.unit.Teardown()
	d.p.Release()
	return err
}

// numberSink emits one capability's value and remembers the last one for
// "read".
type numberSink struct {
	pub  core.EventEmitter
	addr core.CapAddr
	last *types.NumberValue
}

func (s *numberSink) Publish(v float64) {
	s.last = &types.NumberValue{Value: v}
	s.pub.Emit(core.Event{Addr: s.addr, Payload: *s.last})
}

func (s *numberSink) republish() {
	if s.last != nil {
		s.pub.Emit(core.Event{Addr: s.addr, Payload: *s.last})
	}
}
