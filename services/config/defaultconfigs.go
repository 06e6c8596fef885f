package config

// Embedded configuration, keyed by device id (the value placed in ctx under
// CtxDeviceKey). Each top-level key becomes config/<key>.

// Raspberry Pi: one TSC2007 on /dev/i2c-1, PENIRQ on GPIO17, driving a light.
const cfgPiTouch = `{
  "hal": {
    "devices": [
      {
        "id": "panel0",
        "type": "tsc2007_light",
        "params": {"bus": "i2c1", "addr": 72, "irq_pin": 17, "poll_ms": 20, "name": "lamp"}
      }
    ]
  },
  "heartbeat": {
    "interval": 30
  }
}`

// Pico: one TSC2007 on i2c0, PENIRQ on GP22, reporting coordinates.
const cfgPicoTouch = `{
  "hal": {
    "devices": [
      {
        "id": "panel0",
        "type": "tsc2007_sensor",
        "params": {"bus": "i2c0", "irq_pin": 22, "name": "panel"}
      }
    ]
  },
  "heartbeat": {
    "interval": 5
  }
}`

var embeddedConfigs = map[string][]byte{
	"pi-touch":   []byte(cfgPiTouch),
	"pico-touch": []byte(cfgPicoTouch),
}
