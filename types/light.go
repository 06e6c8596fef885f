package types

// ------------------------
// Light (tsc2007_light)
// ------------------------

type ColorMode string

const (
	ColorModeRGB           ColorMode = "rgb"
	ColorModeColdWarmWhite ColorMode = "cold_warm_white"
	ColorModeBrightness    ColorMode = "brightness"
)

type LightInfo struct {
	Bus        string      `json:"bus"`
	Addr       uint16      `json:"addr"`
	IRQPin     int         `json:"irq_pin"`
	ColorModes []ColorMode `json:"color_modes"`
}

// LightValue is the retained light state. Channels are in [0,1]; the
// channels of the inactive color mode are zero.
type LightValue struct {
	On         bool      `json:"on"`
	Mode       ColorMode `json:"mode"`
	Brightness float32   `json:"brightness"`
	Red        float32   `json:"red"`
	Green      float32   `json:"green"`
	Blue       float32   `json:"blue"`
	Cold       float32   `json:"cold_white"`
	Warm       float32   `json:"warm_white"`
}

// LightSet is a partial update (verb "set"). Nil means "leave as-is".
type LightSet struct {
	On         *bool       `json:"on,omitempty"`
	Brightness *float32    `json:"brightness,omitempty"`
	RGB        *[3]float32 `json:"rgb,omitempty"`
	ColdWarm   *[2]float32 `json:"cold_warm,omitempty"`
}
