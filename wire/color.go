// SPDX-License-Identifier: MIT

package wire

import (
	"fmt"
	"strings"
)

// DefaultColor is the colour of wires created without one (black).
const DefaultColor = "SW"

// ColorInfo describes one DIN 72551 base colour.
type ColorInfo struct {
	Code    string
	German  string
	English string
	RGB     [3]uint8
	Hex     string
}

var palette = map[string]ColorInfo{
	"SW": {"SW", "Schwarz", "Black", [3]uint8{0, 0, 0}, "#000000"},
	"BR": {"BR", "Braun", "Brown", [3]uint8{102, 51, 0}, "#663300"},
	"RT": {"RT", "Rot", "Red", [3]uint8{255, 0, 0}, "#FF0000"},
	"GN": {"GN", "Grün", "Green", [3]uint8{0, 128, 0}, "#008000"},
	"BL": {"BL", "Blau", "Blue", [3]uint8{0, 0, 255}, "#0000FF"},
	"VI": {"VI", "Violett", "Violet", [3]uint8{128, 0, 128}, "#800080"},
	"GR": {"GR", "Grau", "Gray", [3]uint8{128, 128, 128}, "#808080"},
	"WS": {"WS", "Weiß", "White", [3]uint8{255, 255, 255}, "#FFFFFF"},
	"GE": {"GE", "Gelb", "Yellow", [3]uint8{255, 255, 0}, "#FFFF00"},
	"OR": {"OR", "Orange", "Orange", [3]uint8{255, 165, 0}, "#FFA500"},
	"RS": {"RS", "Rosa", "Pink", [3]uint8{255, 192, 203}, "#FFC0CB"},
	"TK": {"TK", "Türkis", "Turquoise", [3]uint8{64, 224, 208}, "#40E0D0"},
	"SI": {"SI", "Silber", "Silver", [3]uint8{192, 192, 192}, "#C0C0C0"},
}

// LookupColor returns the palette entry for a base colour code.
func LookupColor(code string) (ColorInfo, bool) {
	c, ok := palette[strings.ToUpper(code)]
	return c, ok
}

// Color is a base colour with an optional stripe, written "SW" or "SW/GE".
// The zero value renders as DefaultColor.
type Color struct {
	Base   string
	Stripe string
}

// ParseColor parses "BASE" or "BASE/STRIPE". Empty input yields DefaultColor.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{Base: DefaultColor}, nil
	}
	base, stripe, _ := strings.Cut(strings.ToUpper(s), "/")
	if _, ok := palette[base]; !ok {
		return Color{}, fmt.Errorf("%w: base %q", ErrInvalidColor, base)
	}
	if stripe != "" {
		if _, ok := palette[stripe]; !ok {
			return Color{}, fmt.Errorf("%w: stripe %q", ErrInvalidColor, stripe)
		}
	}
	return Color{Base: base, Stripe: stripe}, nil
}

// MustColor is ParseColor that panics on error; for literals.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the combined code, e.g. "SW/GE".
func (c Color) Code() string {
	base := c.Base
	if base == "" {
		base = DefaultColor
	}
	if c.Stripe == "" {
		return base
	}
	return base + "/" + c.Stripe
}

func (c Color) String() string { return c.Code() }

// Hex returns the hex code of the base colour.
func (c Color) Hex() string {
	base, _, _ := strings.Cut(c.Code(), "/")
	info, _ := LookupColor(base)
	return info.Hex
}

// DisplayName returns "Black/Yellow" style names; lang "de" selects German.
func (c Color) DisplayName(lang string) string {
	name := func(code string) string {
		info, _ := LookupColor(code)
		if lang == "de" {
			return info.German
		}
		return info.English
	}
	base := c.Base
	if base == "" {
		base = DefaultColor
	}
	if c.Stripe == "" {
		return name(base)
	}
	return name(base) + "/" + name(c.Stripe)
}
