// Package tsc2007 provides a driver for the TI TSC2007 4-wire resistive touch
// screen controller on I²C.
//
//	d := tsc2007.New(bus)
//	err := d.Begin()                      // probe + power down with PENIRQ enabled
//	x, y, z1, z2, ok := d.ReadTouch()     // one sample, ok=false if not touched
//
// Every conversion is a single command byte followed by a 2-byte read carrying
// a 12-bit result. After a sample the device is returned to power-down with
// PENIRQ enabled so the pen interrupt line keeps working between reads.
//
// Datasheet: https://www.ti.com/lit/ds/symlink/tsc2007.pdf
package tsc2007

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

// Address is the default I²C address (A1=A0=0).
const Address = 0x48

// Converter functions (C3..C0).
const (
	measureTemp0 = 0x0
	measureAux   = 0x2
	measureTemp1 = 0x4
	activateX    = 0x8
	activateY    = 0x9
	activateYPX  = 0xA
	setupCommand = 0xB
	measureX     = 0xC
	measureY     = 0xD
	measureZ1    = 0xE
	measureZ2    = 0xF
)

// Power-down modes (PD1..PD0).
const (
	powerDownIRQOn = 0x0
	adcOnIRQOff    = 0x1
	adcOffIRQOn    = 0x2
)

// Resolution (M).
const (
	adc12Bit = 0x0
	adc8Bit  = 0x1
)

// fullScale is returned on X/Y when the panel is not touched.
const fullScale = 4095

var (
	ErrNoDevice = errors.New("tsc2007: no device")
	ErrNoTouch  = errors.New("tsc2007: no touch")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x48 if zero.
	Address uint16
	// ConversionDelay is waited between a command and its read. Default 1 ms.
	ConversionDelay time.Duration
}

// Touch is one raw sample. Z2 is an inverted pressure reading.
type Touch struct {
	X, Y, Z1, Z2 uint16
}

// Device wraps an I²C connection to a TSC2007.
type Device struct {
	bus     drivers.I2C
	Address uint16

	delay time.Duration
	cmd   [1]byte
	buf   [2]byte
	err   error // last bus error seen by ReadTouch
}

var _ touch.Pointer = (*Device)(nil)

// New creates a Device. The I²C bus must already be configured.
// It does not touch the hardware.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: Address, delay: time.Millisecond}
}

// Configure applies optional config.
func (d *Device) Configure(cfg Config) {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	if cfg.ConversionDelay > 0 {
		d.delay = cfg.ConversionDelay
	}
}

// Begin probes the device and leaves it powered down with PENIRQ enabled.
func (d *Device) Begin() error {
	if _, err := d.command(measureTemp0, powerDownIRQOn, adc12Bit); err != nil {
		return errors.Join(ErrNoDevice, err)
	}
	return nil
}

// command issues one conversion and returns its 12-bit result.
func (d *Device) command(fn, pwr, res byte) (uint16, error) {
	d.cmd[0] = fn<<4 | pwr<<2 | res<<1
	if err := d.bus.Tx(d.Address, d.cmd[:], nil); err != nil {
		return 0, err
	}
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	if err := d.bus.Tx(d.Address, nil, d.buf[:]); err != nil {
		return 0, err
	}
	return uint16(d.buf[0])<<4 | uint16(d.buf[1])>>4, nil
}

// Read samples X, Y, Z1 and Z2 then powers the ADC down with PENIRQ enabled.
// ErrNoTouch is returned when X or Y read full scale.
func (d *Device) Read() (Touch, error) {
	var t Touch
	var err error
	steps := [...]struct {
		fn  byte
		out *uint16
	}{
		{measureX, &t.X},
		{measureY, &t.Y},
		{measureZ1, &t.Z1},
		{measureZ2, &t.Z2},
	}
	for _, s := range steps {
		if *s.out, err = d.command(s.fn, adcOnIRQOff, adc12Bit); err != nil {
			return Touch{}, err
		}
	}
	if _, err = d.command(measureTemp0, powerDownIRQOn, adc12Bit); err != nil {
		return Touch{}, err
	}
	if t.X == fullScale || t.Y == fullScale {
		return t, ErrNoTouch
	}
	return t, nil
}

// ReadTouch reports one sample. ok is false when the panel is not touched or
// the bus failed; Err distinguishes the two.
func (d *Device) ReadTouch() (x, y, z1, z2 uint16, ok bool) {
	t, err := d.Read()
	switch err {
	case nil:
		d.err = nil
		return t.X, t.Y, t.Z1, t.Z2, true
	case ErrNoTouch:
		d.err = nil
	default:
		d.err = err
	}
	return 0, 0, 0, 0, false
}

// Err returns the bus error from the last ReadTouch, if any.
func (d *Device) Err() error { return d.err }

// ReadTouchPoint implements touch.Pointer. Z carries Z1; a zero Point means
// no touch.
func (d *Device) ReadTouchPoint() touch.Point {
	x, y, z1, _, ok := d.ReadTouch()
	if !ok {
		return touch.Point{}
	}
	return touch.Point{X: int(x), Y: int(y), Z: int(z1)}
}
