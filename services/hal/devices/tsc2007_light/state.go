package tsc2007_light

import (
	"touchctl-go/services/hal/internal/touch"
	"touchctl-go/types"
	"touchctl-go/x/mathx"
)

// lightState is the light's current value. Every change is published whole.
type lightState struct {
	v    types.LightValue
	emit func(types.LightValue)
}

func newLightState(emit func(types.LightValue)) *lightState {
	return &lightState{
		v:    types.LightValue{Mode: types.ColorModeBrightness, Brightness: 1},
		emit: emit,
	}
}

func (s *lightState) IsOn() bool                    { return s.v.On }
func (s *lightState) ColorModes() []types.ColorMode { return touch.SupportedColorModes }
func (s *lightState) publish()                      { s.emit(s.v) }

// Apply changes only the channels named by cmd.Kind and publishes the
// result. On/off is left alone except by CmdPower.
func (s *lightState) Apply(cmd touch.LightCommand) {
	if s.apply(cmd) {
		s.publish()
	}
}

func (s *lightState) apply(cmd touch.LightCommand) bool {
	switch cmd.Kind {
	case touch.CmdPower:
		s.v.On = cmd.On
	case touch.CmdColdWarm:
		s.v.Mode = types.ColorModeColdWarmWhite
		s.v.Cold, s.v.Warm = unit(cmd.Cold), unit(cmd.Warm)
		s.v.Red, s.v.Green, s.v.Blue = 0, 0, 0
	case touch.CmdBrightness:
		s.v.Brightness = unit(cmd.Brightness)
	case touch.CmdRGB:
		s.v.Mode = types.ColorModeRGB
		s.v.Red, s.v.Green, s.v.Blue = unit(cmd.R), unit(cmd.G), unit(cmd.B)
		s.v.Cold, s.v.Warm = 0, 0
	default:
		return false
	}
	return true
}

// set applies a partial update from the bus and publishes once. It reports
// false when the update names nothing.
func (s *lightState) set(u types.LightSet) bool {
	var cmds []touch.LightCommand
	if u.RGB != nil {
		cmds = append(cmds, touch.LightCommand{Kind: touch.CmdRGB, R: u.RGB[0], G: u.RGB[1], B: u.RGB[2]})
	}
	if u.ColdWarm != nil {
		cmds = append(cmds, touch.LightCommand{Kind: touch.CmdColdWarm, Cold: u.ColdWarm[0], Warm: u.ColdWarm[1]})
	}
	if u.Brightness != nil {
		cmds = append(cmds, touch.LightCommand{Kind: touch.CmdBrightness, Brightness: *u.Brightness})
	}
	if u.On != nil {
		cmds = append(cmds, touch.LightCommand{Kind: touch.CmdPower, On: *u.On})
	}
	if len(cmds) == 0 {
		return false
	}
	for _, c := range cmds {
		s.apply(c)
	}
	s.publish()
	return true
}

func unit(v float32) float32 { return mathx.Clamp(v, 0, 1) }
