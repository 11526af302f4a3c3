package badge

import "fmt"

// Speed is one of the eight scroll speed levels understood by the badge.
type Speed byte

const (
	Speed1_2 Speed = iota // 1.2 fps
	Speed1_3              // 1.3 fps
	Speed2_0              // 2.0 fps
	Speed2_4              // 2.4 fps
	Speed2_8              // 2.8 fps
	Speed4_5              // 4.5 fps
	Speed7_5              // 7.5 fps
	Speed15               // 15 fps
)

// DefaultSpeed is used when a requested speed level is out of range.
const DefaultSpeed = Speed2_8

var speedFPS = [...]float64{1.2, 1.3, 2.0, 2.4, 2.8, 4.5, 7.5, 15}

// SpeedFromCode converts a numeric level (0-7) into a Speed.
// The second return value is false when the level is out of range.
func SpeedFromCode(code int) (Speed, bool) {
	if code < 0 || code >= len(speedFPS) {
		return 0, false
	}
	return Speed(code), true
}

// FPS returns the frame rate the badge animates at for this level.
func (s Speed) FPS() float64 {
	if int(s) >= len(speedFPS) {
		return speedFPS[DefaultSpeed]
	}
	return speedFPS[s]
}

// String returns a readable form like "2.8fps".
func (s Speed) String() string {
	return fmt.Sprintf("%gfps", s.FPS())
}

// Mode is the animation used to bring a message onto the display.
type Mode byte

const (
	ModeLeft Mode = iota
	ModeRight
	ModeUp
	ModeDown
	ModeStill
	ModeSnowflake
	ModePicture
	ModeHold
	ModeLaser
)

// DefaultMode is used when a mode key is not recognized.
const DefaultMode = ModeLeft

var modeNames = [...]string{
	ModeLeft:      "left",
	ModeRight:     "right",
	ModeUp:        "up",
	ModeDown:      "down",
	ModeStill:     "still",
	ModeSnowflake: "snowflake",
	ModePicture:   "picture",
	ModeHold:      "hold",
	ModeLaser:     "laser",
}

// ParseMode looks up a mode by its key. Keys are matched exactly,
// so "Left" or "lft" are not recognized.
func ParseMode(key string) (Mode, bool) {
	for m, name := range modeNames {
		if name == key {
			return Mode(m), true
		}
	}
	return 0, false
}

// String returns the mode key.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

// Effect keys recognized by Resolve.
const (
	EffectFlashing = "flashing"
	EffectBorder   = "border"
	EffectInverted = "inverted"
)

// Flags are the per-message display effects.
type Flags struct {
	Blink  bool
	Border bool
	Invert bool
}

// Style describes how one message is shown. It is a plain value; copies
// never share state.
type Style struct {
	Speed Speed
	Mode  Mode
	Flags Flags
}

// DefaultStyle returns the style used for an unspecified message.
func DefaultStyle() Style {
	return Style{Speed: DefaultSpeed, Mode: DefaultMode}
}

// Resolve builds a Style from loosely typed options. It never fails:
// an unknown speed level becomes DefaultSpeed, an unknown mode key becomes
// ModeLeft and effect keys other than "flashing", "border" and "inverted"
// are ignored.
func Resolve(speedCode int, modeKey string, effects []string) Style {
	s := DefaultStyle()

	if speed, ok := SpeedFromCode(speedCode); ok {
		s.Speed = speed
	} else {
		debugf("Unknown speed %d, using %s", speedCode, DefaultSpeed)
	}

	if mode, ok := ParseMode(modeKey); ok {
		s.Mode = mode
	} else {
		debugf("Unknown mode %q, using %s", modeKey, DefaultMode)
	}

	for _, e := range effects {
		switch e {
		case EffectFlashing:
			s.Flags.Blink = true
		case EffectBorder:
			s.Flags.Border = true
		case EffectInverted:
			s.Flags.Invert = true
		}
	}

	return s
}

// String returns a compact description of the style, used in debug output.
func (s Style) String() string {
	return fmt.Sprintf("speed=%s mode=%s blink=%t border=%t invert=%t",
		s.Speed, s.Mode, s.Flags.Blink, s.Flags.Border, s.Flags.Invert)
}
