package touch

import (
	"math"

	"touchctl-go/types"
	"touchctl-go/x/mathx"
)

// Zone is a horizontal band of the panel selected by y.
type Zone uint8

const (
	ZoneNone Zone = iota
	ZoneToggle
	ZoneColorTemp
	ZoneBrightness
	ZoneHue
)

func (z Zone) String() string {
	switch z {
	case ZoneToggle:
		return "toggle"
	case ZoneColorTemp:
		return "color_temp"
	case ZoneBrightness:
		return "brightness"
	case ZoneHue:
		return "hue"
	default:
		return "none"
	}
}

const (
	zoneHeight = 1000
	zoneCount  = 4
	// fullX maps the x coordinate onto [0,1].
	fullX = 4000
)

// ZoneOf classifies y into half-open bands of zoneHeight. y >= 4000 is ZoneNone.
func ZoneOf(y uint16) Zone {
	if !mathx.Between(int(y), 0, zoneHeight*zoneCount) {
		return ZoneNone
	}
	return ZoneToggle + Zone(int(y)/zoneHeight)
}

// CommandKind tags a LightCommand.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdPower
	CmdColdWarm
	CmdBrightness
	CmdRGB
)

// LightCommand is one change to the light. Only the fields for Kind are set.
type LightCommand struct {
	Kind       CommandKind
	On         bool
	Cold, Warm float32
	Brightness float32
	R, G, B    float32
}

// LightSink holds the light state the mapper reads and writes.
type LightSink interface {
	IsOn() bool
	Apply(cmd LightCommand)
	ColorModes() []types.ColorMode
}

// SupportedColorModes is what a light driven by ZoneMapper must accept.
var SupportedColorModes = []types.ColorMode{
	types.ColorModeRGB,
	types.ColorModeColdWarmWhite,
	types.ColorModeBrightness,
}

// ZoneMapper turns each accepted sample into at most one light command.
type ZoneMapper struct {
	Light LightSink
}

// Consume applies the command for s, if its zone has one.
func (m *ZoneMapper) Consume(s Sample) {
	if cmd, ok := Command(s, m.Light.IsOn()); ok {
		m.Light.Apply(cmd)
	}
}

// Command computes the command for s given the current on state. Toggle
// flips on every call; holding a finger in that band toggles each tick.
func Command(s Sample, on bool) (LightCommand, bool) {
	t := float32(mathx.Unit(s.X, fullX))
	switch ZoneOf(s.Y) {
	case ZoneToggle:
		return LightCommand{Kind: CmdPower, On: !on}, true
	case ZoneColorTemp:
		return LightCommand{Kind: CmdColdWarm, Cold: t, Warm: 1 - t}, true
	case ZoneBrightness:
		return LightCommand{Kind: CmdBrightness, Brightness: t}, true
	case ZoneHue:
		r, g, b := HueToRGB(float64(t))
		return LightCommand{Kind: CmdRGB, R: r, G: g, B: b}, true
	default:
		return LightCommand{}, false
	}
}

// HueToRGB approximates a hue wheel with three cosines 120° apart, each
// rescaled from [-1,1] to [0,1]. h is a fraction of a full turn.
func HueToRGB(h float64) (r, g, b float32) {
	th := h * 2 * math.Pi
	ch := func(phase float64) float32 {
		return float32((math.Cos(th+phase) + 1) / 2)
	}
	return ch(0), ch(2 * math.Pi / 3), ch(4 * math.Pi / 3)
}
