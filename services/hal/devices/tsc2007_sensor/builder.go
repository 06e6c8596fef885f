package tsc2007_sensor

import (
	"context"

	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/touch"
	"touchctl-go/services/hal/internal/tscpanel"
	"touchctl-go/types"
)

func init() { core.RegisterBuilder("tsc2007_sensor", builder{}) }

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := tscpanel.Open(in)
	if err != nil {
		return nil, err
	}
	d := &Device{id: in.ID, p: p, pub: in.Res.Pub}
	for i, k := range axisKinds {
		d.sinks[i] = &numberSink{
			pub:  in.Res.Pub,
			addr: core.CapAddr{Domain: types.DomainTouch, Kind: string(k), Name: p.Name},
		}
	}
	d.unit = touch.NewUnit(p.Name, p.Driver, &touch.Router{X: d.sinks[0], Y: d.sinks[1], Pressure: d.sinks[2]})
	return d, nil
}
