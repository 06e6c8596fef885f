// Package tscpanel binds a TSC2007 on a claimed I²C bus and PENIRQ pin for
// the touch device builders.
package tscpanel

import (
	"time"

	"touchctl-go/drivers/tsc2007"
	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/util"
	"touchctl-go/types"
	"touchctl-go/x/strx"
	"touchctl-go/x/timex"
)

const DefaultPoll = 20 * time.Millisecond

// Config is TSC2007Params with defaults applied.
type Config struct {
	Bus    string
	Addr   uint16
	IRQPin int
	Every  time.Duration
	Name   string
}

// ParseParams decodes and validates builder params for device id.
func ParseParams(id string, raw any) (Config, error) {
	var p types.TSC2007Params
	if raw != nil {
		if err := util.DecodeJSON(raw, &p); err != nil {
			return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "tsc2007.params", Err: err}
		}
	}
	if p.Bus == "" {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "tsc2007.params", Msg: "bus required"}
	}
	if p.IRQPin == nil {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "tsc2007.params", Msg: "irq_pin required"}
	}
	if *p.IRQPin < 0 {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "tsc2007.params", Msg: "irq_pin must be >= 0"}
	}
	return Config{
		Bus:    p.Bus,
		Addr:   strx.Coalesce(p.Addr, tsc2007.Address),
		IRQPin: *p.IRQPin,
		Every:  timex.Ms(p.PollMs, DefaultPoll),
		Name:   strx.Coalesce(p.Name, id),
	}, nil
}

// Panel owns the claims and the driver handle for one device.
type Panel struct {
	Config
	Pin    core.IRQPin
	Driver *tsc2007.Device

	devID   string
	reg     core.ResourceRegistry
	failing bool
}

// Open parses params and claims the bus and pin. Nothing is claimed on error.
func Open(in core.BuilderInput) (*Panel, error) {
	cfg, err := ParseParams(in.ID, in.Params)
	if err != nil {
		return nil, err
	}
	bus, err := in.Res.Reg.ClaimI2C(in.ID, cfg.Bus)
	if err != nil {
		return nil, err
	}
	pin, err := in.Res.Reg.ClaimPin(in.ID, cfg.IRQPin)
	if err != nil {
		in.Res.Reg.ReleaseI2C(in.ID, cfg.Bus)
		return nil, err
	}
	drv := tsc2007.New(bus)
	drv.Configure(tsc2007.Config{Address: cfg.Addr})
	return &Panel{Config: cfg, Pin: pin, Driver: drv, devID: in.ID, reg: in.Res.Reg}, nil
}

// Release returns the pin and bus to the registry.
func (p *Panel) Release() {
	p.reg.ReleasePin(p.devID, p.IRQPin)
	p.reg.ReleaseI2C(p.devID, p.Bus)
}

// BusFault reports whether the fault state changed since the previous call,
// along with the driver's last bus error.
func (p *Panel) BusFault() (changed bool, err error) {
	err = p.Driver.Err()
	failing := err != nil
	changed = failing != p.failing
	p.failing = failing
	return changed, err
}

// Info is the detail common to every capability of a panel.
func (p *Panel) Info() types.TouchInfo {
	return types.TouchInfo{Bus: p.Bus, Addr: p.Addr, IRQPin: p.IRQPin}
}
