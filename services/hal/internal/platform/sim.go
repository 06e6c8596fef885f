// services/hal/internal/platform/sim.go
package platform

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"

	"touchctl-go/services/hal/internal/core"
)

// ----------------------------- GPIO (simulated) ------------------------------

// FakePin implements core.IRQPin. Set drives the level and fires the
// handler synchronously when the configured edge is seen, the way a real
// ISR preempts the caller.
type FakePin struct {
	mu      sync.Mutex
	number  int
	level   bool
	pull    core.Pull
	irqEdge core.Edge
	irqFunc func()

	// FailConfigure makes ConfigureInput return an error.
	FailConfigure bool
}

func NewFakePin(n int, level bool) *FakePin { return &FakePin{number: n, level: level} }

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) ConfigureInput(pull core.Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailConfigure {
		return errors.New("sim: configure failed")
	}
	p.pull = pull
	return nil
}

func (p *FakePin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	irq := p.irqFunc
	fire := irqWanted(p.irqEdge, old, level)
	p.mu.Unlock()
	if fire && irq != nil {
		irq()
	}
}

// Fire invokes the handler without a level change (spurious or bounced edge).
func (p *FakePin) Fire() {
	p.mu.Lock()
	irq := p.irqFunc
	p.mu.Unlock()
	if irq != nil {
		irq()
	}
}

func (p *FakePin) SetIRQ(edge core.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = core.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// Attached reports whether an IRQ handler is installed.
func (p *FakePin) Attached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.irqFunc != nil
}

// Pull returns the last configured pull.
func (p *FakePin) Pull() core.Pull {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pull
}

func irqWanted(cfg core.Edge, prev, next bool) bool {
	rising, falling := !prev && next, prev && !next
	switch cfg {
	case core.EdgeRising:
		return rising
	case core.EdgeFalling:
		return falling
	case core.EdgeBoth:
		return rising || falling
	default:
		return false
	}
}

// FakePins hands out stable *FakePin instances per number.
type FakePins struct {
	mu   sync.Mutex
	pins map[int]*FakePin
	// Max is the highest valid pin number.
	Max int
}

func (f *FakePins) ByNumber(n int) (core.IRQPin, bool) {
	p, ok := f.Pin(n)
	return p, ok
}

// Pin returns the concrete fake so tests can drive edges.
func (f *FakePins) Pin(n int) (*FakePin, bool) {
	if n < 0 || n > f.Max {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = NewFakePin(n, false)
		f.pins[n] = p
	}
	return p, true
}

// ----------------------------- I²C (simulated) -------------------------------

// SimTSC2007 answers TSC2007 conversion commands on I²C from a settable
// touch state. X and Y read full scale while untouched.
type SimTSC2007 struct {
	mu      sync.Mutex
	Addr    uint16
	x, y    uint16
	z1, z2  uint16
	touched bool
	last    byte
	reads   int
	absent  bool
}

const simFullScale = 4095

func NewSimTSC2007() *SimTSC2007 { return &SimTSC2007{Addr: 0x48} }

// Touch sets the next sample.
func (s *SimTSC2007) Touch(x, y, z1, z2 uint16) {
	s.mu.Lock()
	s.x, s.y, s.z1, s.z2, s.touched = x, y, z1, z2, true
	s.mu.Unlock()
}

// Release returns the panel to untouched.
func (s *SimTSC2007) Release() {
	s.mu.Lock()
	s.touched = false
	s.mu.Unlock()
}

// SetAbsent makes the device NACK every transaction.
func (s *SimTSC2007) SetAbsent(v bool) {
	s.mu.Lock()
	s.absent = v
	s.mu.Unlock()
}

// Conversions returns the number of X conversions served, i.e. samples read.
func (s *SimTSC2007) Conversions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

var errNack = errors.New("sim: i2c nack")

func (s *SimTSC2007) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.absent || addr != s.Addr {
		return errNack
	}
	if len(w) > 0 {
		s.last = w[0]
	}
	if len(r) < 2 {
		return nil
	}
	var v uint16
	switch s.last >> 4 {
	case 0xC:
		s.reads++
		v = simFullScale
		if s.touched {
			v = s.x
		}
	case 0xD:
		v = simFullScale
		if s.touched {
			v = s.y
		}
	case 0xE:
		if s.touched {
			v = s.z1
		}
	case 0xF:
		v = simFullScale
		if s.touched {
			v = s.z2
		}
	}
	r[0] = byte(v >> 4)
	r[1] = byte(v<<4) & 0xF0
	return nil
}

// SimI2C is a fixed map of simulated buses.
type SimI2C map[string]drivers.I2C

func (s SimI2C) ByID(id string) (drivers.I2C, bool) {
	b, ok := s[id]
	return b, ok
}
