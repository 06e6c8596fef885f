package types

// ------------------------
// Touch telemetry (tsc2007_sensor)
// ------------------------

type TouchInfo struct {
	Bus    string `json:"bus"`
	Addr   uint16 `json:"addr"`
	IRQPin int    `json:"irq_pin"`
	Axis   string `json:"axis"` // "x","y","pressure"
}

// NumberValue is one raw reading; no unit conversion is applied.
type NumberValue struct {
	Value float64 `json:"value"`
}
