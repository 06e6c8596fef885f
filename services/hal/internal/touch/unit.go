package touch

import (
	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/core"
	"touchctl-go/x/logx"
)

var log = logx.New("touch")

// Unit is one panel: presence tracking, the sample gate and a consumer.
// Setup, Tick and Teardown are called from a single goroutine.
type Unit struct {
	Name     string
	presence Presence
	gate     Gate
	consumer Consumer
	seen     uint32
}

func NewUnit(name string, drv Controller, c Consumer) *Unit {
	u := &Unit{Name: name, consumer: c}
	u.gate = Gate{Presence: &u.presence, Driver: drv}
	return u
}

// Setup brings up the controller and then the interrupt line. Any failure
// leaves nothing attached.
func (u *Unit) Setup(pin core.IRQPin) error {
	if err := u.gate.Driver.Begin(); err != nil {
		return errcode.Wrap(errcode.NoDevice, "touch.setup", err)
	}
	if err := u.presence.Init(pin); err != nil {
		return errcode.Wrap(errcode.SetupFailed, "touch.setup", err)
	}
	u.seen = u.presence.Transitions()
	log.Infof("%s: setup complete (present=%t)", u.Name, u.presence.Present())
	return nil
}

// Tick runs one poll and hands an accepted sample to the consumer.
func (u *Unit) Tick() {
	if n := u.presence.Transitions(); n != u.seen {
		log.Debugf("%s: presence %t (%d transitions)", u.Name, u.presence.Present(), n-u.seen)
		u.seen = n
	}
	s, ok := u.gate.Poll()
	if !ok {
		return
	}
	if log.Enabled(logx.LevelDebug) {
		log.Debugf("%s: touch x=%d y=%d z1=%d z2=%d", u.Name, s.X, s.Y, s.Z1, s.Z2)
	}
	u.consumer.Consume(s)
}

func (u *Unit) Present() bool { return u.presence.Present() }

// Teardown detaches the interrupt handler; it must run before the unit is
// dropped.
func (u *Unit) Teardown() error { return u.presence.Close() }
