// services/hal/internal/provider/provider.go
package provider

import (
	"sync"

	"tinygo.org/x/drivers"

	"touchctl-go/errcode"
	"touchctl-go/services/hal/internal/core"
)

// Registry implements core.ResourceRegistry over platform factories.
// GPIO pins are exclusive to one device. I²C buses are shared; every
// claimant receives the same wrapper, which serialises transactions.
type Registry struct {
	i2c  core.I2CFactory
	pins core.PinFactory

	mu       sync.Mutex
	pinOwner map[int]string
	buses    map[string]*sharedI2C
}

func New(i2c core.I2CFactory, pins core.PinFactory) *Registry {
	return &Registry{
		i2c:      i2c,
		pins:     pins,
		pinOwner: make(map[int]string),
		buses:    make(map[string]*sharedI2C),
	}
}

var _ core.ResourceRegistry = (*Registry)(nil)

func (r *Registry) ClaimI2C(devID, busID string) (drivers.I2C, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buses[busID]; ok {
		b.users[devID] = struct{}{}
		return b, nil
	}
	if r.i2c == nil {
		return nil, errcode.UnknownBus
	}
	raw, ok := r.i2c.ByID(busID)
	if !ok || raw == nil {
		return nil, errcode.UnknownBus
	}
	b := &sharedI2C{bus: raw, users: map[string]struct{}{devID: {}}}
	r.buses[busID] = b
	return b, nil
}

func (r *Registry) ReleaseI2C(devID, busID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buses[busID]; ok {
		delete(b.users, devID)
	}
}

func (r *Registry) ClaimPin(devID string, n int) (core.IRQPin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, used := r.pinOwner[n]; used && owner != devID {
		return nil, errcode.PinInUse
	}
	if r.pins == nil {
		return nil, errcode.UnknownPin
	}
	p, ok := r.pins.ByNumber(n)
	if !ok || p == nil {
		return nil, errcode.UnknownPin
	}
	r.pinOwner[n] = devID
	return p, nil
}

func (r *Registry) ReleasePin(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pinOwner[n] == devID {
		delete(r.pinOwner, n)
	}
}

// PinOwner reports which device holds pin n.
func (r *Registry) PinOwner(n int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.pinOwner[n]
	return id, ok
}

// BusUsers returns the number of devices holding busID.
func (r *Registry) BusUsers(busID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buses[busID]; ok {
		return len(b.users)
	}
	return 0
}

type sharedI2C struct {
	mu    sync.Mutex
	bus   drivers.I2C
	users map[string]struct{} // guarded by Registry.mu
}

func (s *sharedI2C) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bus.Tx(addr, w, r)
}
