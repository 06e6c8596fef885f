package touch

import (
	"sync/atomic"

	"touchctl-go/services/hal/internal/core"
)

// Presence holds the debounced "finger on panel" flag. It is written by the
// pin's interrupt handler and read from the tick; last read level wins.
type Presence struct {
	pin         core.IRQPin
	present     atomic.Bool
	transitions atomic.Uint32
}

// Init configures pin as a pulled-up input, seeds the flag from its current
// level and installs the rising-edge handler.
func (p *Presence) Init(pin core.IRQPin) error {
	if err := pin.ConfigureInput(core.PullUp); err != nil {
		return err
	}
	p.present.Store(pin.Get())
	p.pin = pin
	if err := pin.SetIRQ(core.EdgeRising, p.onEdge); err != nil {
		p.pin = nil
		return err
	}
	return nil
}

// onEdge runs in interrupt context.
func (p *Presence) onEdge() {
	lvl := p.pin.Get()
	if lvl != p.present.Load() {
		p.present.Store(lvl)
		p.transitions.Add(1)
	}
}

// Present reports the last level read by the handler.
func (p *Presence) Present() bool { return p.present.Load() }

// Transitions counts genuine level changes seen by the handler.
func (p *Presence) Transitions() uint32 { return p.transitions.Load() }

// Close detaches the handler. Safe to call more than once.
func (p *Presence) Close() error {
	if p.pin == nil {
		return nil
	}
	err := p.pin.ClearIRQ()
	p.pin = nil
	return err
}
