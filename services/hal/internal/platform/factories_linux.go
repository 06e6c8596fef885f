// services/hal/internal/platform/factories_linux.go
//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"strconv"
	"strings"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"touchctl-go/services/hal/internal/core"
	"touchctl-go/x/logx"
)

var log = logx.New("platform")

var initOnce = sync.OnceValue(func() error {
	_, err := host.Init()
	if err != nil {
		log.Errorf("periph host init: %v", err)
	}
	return err
})

// DefaultI2CFactory opens /dev/i2c-N buses through periph on first use.
// "i2c1", "I2C1", "1" and "/dev/i2c-1" all name the same bus.
func DefaultI2CFactory() core.I2CFactory {
	return &periphI2CFactory{buses: make(map[string]i2c.BusCloser)}
}

// DefaultPinFactory resolves pins by GPIO number through gpioreg.
func DefaultPinFactory() core.PinFactory { return periphPinFactory{} }

type periphI2CFactory struct {
	mu    sync.Mutex
	buses map[string]i2c.BusCloser
}

func (f *periphI2CFactory) ByID(id string) (drivers.I2C, bool) {
	if initOnce() != nil {
		return nil, false
	}
	name := i2cName(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.buses[name]; ok {
		return b, true
	}
	b, err := i2creg.Open(name)
	if err != nil {
		log.Warnf("open %s: %v", name, err)
		return nil, false
	}
	f.buses[name] = b
	return b, true
}

func i2cName(id string) string {
	if strings.HasPrefix(id, "/dev/") {
		return id
	}
	if n, ok := strings.CutPrefix(strings.ToLower(id), "i2c"); ok {
		return n
	}
	return id
}

type periphPinFactory struct{}

func (periphPinFactory) ByNumber(n int) (core.IRQPin, bool) {
	if n < 0 || initOnce() != nil {
		return nil, false
	}
	p := gpioreg.ByName(strconv.Itoa(n))
	if p == nil {
		return nil, false
	}
	return &periphPin{p: p, n: n}, true
}

// periphPin emulates an interrupt line: one goroutine blocks in WaitForEdge
// and runs the handler for each edge. ClearIRQ halts and joins it.
type periphPin struct {
	p    gpio.PinIO
	n    int
	pull gpio.Pull

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (r *periphPin) Number() int { return r.n }
func (r *periphPin) Get() bool   { return r.p.Read() == gpio.High }

func (r *periphPin) ConfigureInput(pull core.Pull) error {
	r.pull = toPull(pull)
	return r.p.In(r.pull, gpio.NoEdge)
}

func (r *periphPin) SetIRQ(edge core.Edge, handler func()) error {
	if err := r.ClearIRQ(); err != nil {
		return err
	}
	if err := r.p.In(r.pull, toEdge(edge)); err != nil {
		return err
	}
	r.mu.Lock()
	stop, done := make(chan struct{}), make(chan struct{})
	r.stop, r.done = stop, done
	r.mu.Unlock()

	go func() {
		defer close(done)
		for r.p.WaitForEdge(-1) {
			select {
			case <-stop:
				return
			default:
			}
			handler()
		}
	}()
	return nil
}

func (r *periphPin) ClearIRQ() error {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	err := r.p.Halt()
	<-done
	if err != nil {
		return err
	}
	return r.p.In(r.pull, gpio.NoEdge)
}

func toPull(p core.Pull) gpio.Pull {
	switch p {
	case core.PullUp:
		return gpio.PullUp
	case core.PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func toEdge(e core.Edge) gpio.Edge {
	switch e {
	case core.EdgeRising:
		return gpio.RisingEdge
	case core.EdgeFalling:
		return gpio.FallingEdge
	case core.EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}
