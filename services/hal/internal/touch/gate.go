package touch

// TouchThreshold is the z1 pressure a sample must exceed to be accepted.
const TouchThreshold = 50

// Sample is one raw controller reading. Z2 is carried but never published.
type Sample struct {
	X, Y   uint16
	Z1, Z2 uint16
}

// Controller is the touch-controller driver surface used by the gate.
type Controller interface {
	Begin() error
	ReadTouch() (x, y, z1, z2 uint16, ok bool)
}

// Gate reads one sample per tick while a touch is present and filters out
// light contact.
type Gate struct {
	Presence *Presence
	Driver   Controller
}

// Poll returns one accepted sample. The driver is not read while no touch is
// present.
func (g *Gate) Poll() (Sample, bool) {
	if !g.Presence.Present() {
		return Sample{}, false
	}
	x, y, z1, z2, ok := g.Driver.ReadTouch()
	if !ok || z1 <= TouchThreshold {
		return Sample{}, false
	}
	return Sample{X: x, Y: y, Z1: z1, Z2: z2}, true
}
