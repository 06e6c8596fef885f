package tsc2007_light

import (
	"context"

	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/touch"
	"touchctl-go/services/hal/internal/tscpanel"
	"touchctl-go/types"
)

func init() { core.RegisterBuilder("tsc2007_light", builder{}) }

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := tscpanel.Open(in)
	if err != nil {
		return nil, err
	}
	d := &Device{
		id:   in.ID,
		p:    p,
		addr: core.CapAddr{Domain: types.DomainLight, Kind: string(types.KindLight), Name: p.Name},
	}
	d.light = newLightState(func(v types.LightValue) {
		in.Res.Pub.Emit(core.Event{Addr: d.addr, Payload: v})
	})
	d.pub = in.Res.Pub
	d.unit = touch.NewUnit(p.Name, p.Driver, &touch.ZoneMapper{Light: d.light})
	return d, nil
}
