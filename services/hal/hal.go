// services/hal/hal.go
package hal

import (
	"context"

	"touchctl-go/bus"
	"touchctl-go/services/hal/internal/core"
	"touchctl-go/services/hal/internal/platform"
	"touchctl-go/services/hal/internal/provider"

	// Device builders register themselves in init().
	_ "touchctl-go/services/hal/devices/tsc2007_light"
	_ "touchctl-go/services/hal/devices/tsc2007_sensor"
)

type (
	I2CFactory = core.I2CFactory
	PinFactory = core.PinFactory
	IRQPin     = core.IRQPin
)

// Run starts the HAL on the platform's default buses and pins and blocks
// until ctx is cancelled. Devices arrive on config/hal.
func Run(ctx context.Context, conn *bus.Connection) {
	RunWith(ctx, conn, platform.DefaultI2CFactory(), platform.DefaultPinFactory())
}

// RunWith is Run over explicit factories.
func RunWith(ctx context.Context, conn *bus.Connection, i2c I2CFactory, pins PinFactory) {
	reg := provider.New(i2c, pins)
	core.NewHAL(conn, core.Resources{Reg: reg}).Run(ctx)
}
