package core

import (
	"tinygo.org/x/drivers"
)

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

type GPIOPin interface {
	Number() int
	ConfigureInput(pull Pull) error
	Get() bool
}

// IRQPin extends GPIOPin with interrupts. The handler runs in interrupt
// context: it must not block, allocate or log.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// ---- Platform factories ----

// I2CFactory supplies configured I²C buses by id ("i2c0", "i2c1", ...).
type I2CFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// PinFactory supplies IRQ-capable pins by number.
type PinFactory interface {
	ByNumber(n int) (IRQPin, bool)
}

// ---- Resource ownership ----

// ResourceRegistry arbitrates hardware between devices. Pins are exclusive;
// I²C buses are shared and serialised by the registry.
type ResourceRegistry interface {
	ClaimI2C(devID, busID string) (drivers.I2C, error)
	ReleaseI2C(devID, busID string)

	ClaimPin(devID string, n int) (IRQPin, error)
	ReleasePin(devID string, n int)
}

// ---- Device → HAL telemetry (single shape) ----
// By default an Event is a value update published retained on .../value.
// IsEvent publishes on .../event (non-retained). A non-empty Err publishes
// only .../status=degraded.

type Event struct {
	Addr     CapAddr
	Payload  any
	TSms     int64
	Err      string
	IsEvent  bool
	EventTag string
}

type EventEmitter interface {
	// Emit must be non-blocking; false indicates a drop under pressure.
	Emit(ev Event) bool
}

// ---- HAL-injected resources ----

type Resources struct {
	Reg ResourceRegistry
	Pub EventEmitter // filled in by the HAL
}
