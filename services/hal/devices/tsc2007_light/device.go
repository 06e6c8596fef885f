package tsc2007_light

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

var log = logx.New("tsc2007_light")

// Device drives one light from touch zones on the panel. The light state is
// also settable over the bus.
type Device struct {
	id    string
	p     *tscpanel.Panel
	addr  core.CapAddr
	pub   core.EventEmitter
	light *lightState
	unit  *touch.Unit
}

func (d *Device) ID() string               { return d.id }
func (d *Device) TickEvery() time.Duration { return d.p.Every }

func (d *Device) Capabilities() []core.CapabilitySpec {
	ti := d.p.Info()
	return []core.CapabilitySpec{{
		Domain: types.DomainLight,
		Kind:   types.KindLight,
		Name:   d.p.Name,
		Info: types.Info{SchemaVersion: 1, Driver: "tsc2007", Detail: types.LightInfo{
			Bus:        ti.Bus,
			Addr:       ti.Addr,
			IRQPin:     ti.IRQPin,
			ColorModes: d.light.ColorModes(),
		}},
	}}
}

func (d *Device) Init(ctx context.Context) error {
	if err := d.unit.Setup(d.p.Pin); err != nil {
		return err
	}
	d.light.publish()
	return nil
}

func (d *Device) Tick(ctx context.Context) {
	d.unit.Tick()
	if changed, err := d.p.BusFault(); changed && err != nil {
		log.Warnf("%s: bus error: %v", d.id, err)
		d.pub.Emit(core.Event{Addr: d.addr, Err: string(errcode.IOError)})
	}
}

func (d *Device) Control(_ core.CapAddr, verb string, payload any) (core.EnqueueResult, error) {
	switch verb {
	case "read":
		d.light.publish()
	case "toggle":
		d.light.Apply(touch.LightCommand{Kind: touch.CmdPower, On: !d.light.IsOn()})
	case "set":
		set, code := core.As[types.LightSet](payload)
		if code != "" {
			return core.EnqueueResult{OK: false, Error: code}, nil
		}
		if !d.light.set(set) {
			return core.EnqueueResult{OK: false, Error: errcode.InvalidPayload}, nil
		}
	default:
		return core.EnqueueResult{OK: false, Error: errcode.Unsupported}, nil
	}
	return core.EnqueueResult{OK: true}, nil
}

func (d *Device) Close() error {
	err := d.unit.Teardown()
	d.p.Release()
	return err
}
