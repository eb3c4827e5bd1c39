package common

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ColorCode identifies a signaling channel shared by crystals, gates and doors.
type ColorCode uint8

const (
	ColorRed ColorCode = iota
	ColorGreen
	ColorBlue
	ColorYellow

	colorCodeEnd
)

// NumColorCodes is the number of valid color codes. It is a constant so it can
// size per-channel tables.
const NumColorCodes = int(colorCodeEnd)

// DefaultColorCode is used when an authored record omits its color.
const DefaultColorCode = ColorRed

var colorCodeNames = [NumColorCodes]string{
	ColorRed:    "red",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorYellow: "yellow",
}

var colorCodePalette = [NumColorCodes]color.RGBA{
	ColorRed:    colornames.Crimson,
	ColorGreen:  colornames.Limegreen,
	ColorBlue:   colornames.Dodgerblue,
	ColorYellow: colornames.Gold,
}

// AllColorCodes returns every valid color code in ordinal order.
func AllColorCodes() []ColorCode {
	out := make([]ColorCode, 0, NumColorCodes)
	for c := ColorCode(0); c < colorCodeEnd; c++ {
		out = append(out, c)
	}
	return out
}

func (c ColorCode) Valid() bool {
	return c < colorCodeEnd
}

// Index returns the contiguous ordinal of c, in [0, NumColorCodes).
func (c ColorCode) Index() int {
	return int(c)
}

func (c ColorCode) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ColorCode(%d)", uint8(c))
	}
	return colorCodeNames[c]
}

// RGBA returns the display color for the channel.
func (c ColorCode) RGBA() color.RGBA {
	if !c.Valid() {
		return colornames.Gray
	}
	return colorCodePalette[c]
}

// ParseColorCode parses a color name, ignoring case and surrounding space.
func ParseColorCode(s string) (ColorCode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorCodeNames {
		if n == name {
			return ColorCode(i), nil
		}
	}
	return DefaultColorCode, fmt.Errorf("common: unknown color code %q", s)
}

func (c ColorCode) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("common: invalid color code %d", uint8(c))
	}
	return []byte(colorCodeNames[c]), nil
}

func (c *ColorCode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorCode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
