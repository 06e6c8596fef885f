package types

// ------------------------
// Common HAL state (retained)
// ------------------------

type HALState struct {
	Level  string `json:"level"`  // "idle", "ready", "stopped"
	Status string `json:"status"` // freeform short code
	TSms   int64  `json:"ts_ms"`
}

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TSms  int64  `json:"ts_ms"`
	Error string `json:"error,omitempty"` // machine-readable short code
}

// ------------------------
// HAL configuration (config/hal)
// ------------------------

type HALConfig struct {
	Devices []HALDevice `json:"devices"`
}

type HALDevice struct {
	ID     string `json:"id"`     // logical device id
	Type   string `json:"type"`   // "tsc2007_sensor" | "tsc2007_light"
	Params any    `json:"params"` // device-specific params (JSON-like)
}

// TSC2007Params is shared by both touch device types.
type TSC2007Params struct {
	Bus    string `json:"bus"`               // I²C bus id, e.g. "i2c1"
	Addr   uint16 `json:"addr,omitempty"`    // default 0x48
	IRQPin *int   `json:"irq_pin"`           // PENIRQ line, required
	PollMs uint32 `json:"poll_ms,omitempty"` // tick interval, default 20
	Name   string `json:"name,omitempty"`    // capability name, default device id
}

// ------------------------
// Generic replies
// ------------------------

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ------------------------
// Info envelope (retained)
// ------------------------

type Info struct {
	SchemaVersion int    `json:"schema_version"`
	Driver        string `json:"driver"`
	Detail        any    `json:"detail,omitempty"` // one of *Info types
}
