package types

// ------------------------
// Capability addressing & kinds
// ------------------------

type Kind string

const (
	KindTouchX   Kind = "x"
	KindTouchY   Kind = "y"
	KindPressure Kind = "pressure"
	KindLight    Kind = "light"
)

// Domains used on hal/cap/<domain>/...
const (
	DomainTouch = "touch"
	DomainLight = "light"
)

// CapabilityAddress identifies a public capability on the bus.
type CapabilityAddress struct {
	Domain string `json:"domain"` // "touch","light"
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
}
