// services/hal/internal/platform/factories_host.go
//go:build !linux && !rp2040 && !rp2350

package platform

import "touchctl-go/services/hal/internal/core"

// Hosts without real hardware run against one simulated TSC2007 on i2c0
// and fake pins GP0..GP28.
var (
	hostPanel = NewSimTSC2007()
	hostPins  = &FakePins{Max: 28}
)

func DefaultI2CFactory() core.I2CFactory { return SimI2C{"i2c0": hostPanel} }
func DefaultPinFactory() core.PinFactory { return hostPins }
