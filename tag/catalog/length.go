package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
)

const (
	lengthNone     uint32 = 0
	lengthAbsolute uint32 = 0x0001
	lengthAuto     uint32 = 0x0002
	lengthPercent  uint32 = 0x0003
	lengthRelative uint32 = 0x0004 // font- or viewport-relative
	lengthCalc     uint32 = 0x0005
	kindMask       uint32 = 0x000f
)

// Length is an option type for CSS lengths as they appear in tag values.
//
//    type Length
//        = Auto
//        | Just dimen.DU       (px, pt, …)
//        | Percentage float64
//        | Relative unit       (em, rem, vw, vh, …)
//        | Calc expression
//
// A length remembers its CSS rendering, which is what tags output.
type Length struct {
	d     dimen.DU
	num   float64
	unit  string
	text  string
	flags uint32
}

// Auto creates the CSS length "auto".
func Auto() Length {
	return Length{text: "auto", flags: lengthAuto}
}

// IsNone is a predicate: is l the zero length value, i.e. not a length at all?
func (l Length) IsNone() bool {
	return l.flags&kindMask == lengthNone
}

// CSS returns the CSS rendering of l. Absolute lengths are rendered from their
// dimension, rounded to 1/1000 of their unit.
func (l Length) CSS() string {
	return l.text
}

func (l Length) String() string {
	if l.IsNone() {
		return "<none>"
	}
	return l.text
}

// Points returns an absolute length in big points (1/72 in).
func (l Length) Points() (float64, bool) {
	if l.flags&kindMask != lengthAbsolute {
		return 0, false
	}
	return l.d.Points(), true
}

// ErrLength flags a value which is not a CSS length.
var ErrLength = errors.New("not a CSS length")

// unit → size of one unit, for absolute units (CSS: 1in = 72pt = 96px)
var absoluteUnits = map[string]dimen.DU{
	"px": dimen.BP * 3 / 4,
	"pt": dimen.BP,
	"pc": 12 * dimen.BP,
	"in": dimen.IN,
	"cm": dimen.CM,
	"mm": dimen.MM,
}

var relativeUnits = map[string]bool{
	"em": true, "rem": true, "ex": true, "ch": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
}

// ParseLength parses a CSS length. Unitless numbers are interpreted
// in defaultUnit, which may be "%", "px" or any other CSS length unit.
// Absolute lengths must fit into a dimen.DU (about ±43000px).
func ParseLength(s string, defaultUnit string) (Length, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return Length{}, fmt.Errorf("%w: empty value", ErrLength)
	case s == "auto":
		return Auto(), nil
	case strings.HasPrefix(s, "calc(") && strings.HasSuffix(s, ")"):
		return Length{text: s, flags: lengthCalc}, nil
	}
	dim, err := style.ParseDimension(s)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrLength, s)
	}
	n, unit := dim.Value, dim.Unit
	if unit == "" {
		unit = defaultUnit
	}
	l := Length{num: n, unit: unit, text: formatNum(n) + unit}
	if scale, ok := absoluteUnits[unit]; ok {
		du := math.Round(n * float64(scale))
		if du > math.MaxInt32 || du < math.MinInt32 {
			return Length{}, fmt.Errorf("%w: %q out of range", ErrLength, s)
		}
		l.d = dimen.DU(du)
		l.text = formatNum(math.Round(float64(l.d)/float64(scale)*1000)/1000) + unit
		l.flags = lengthAbsolute
		return l, nil
	}
	switch {
	case unit == "%":
		l.flags = lengthPercent
	case relativeUnits[unit]:
		l.flags = lengthRelative
	default:
		return Length{}, fmt.Errorf("%w: unknown unit in %q", ErrLength, s)
	}
	return l, nil
}

// IsNegative is a predicate: is l an absolute, percentage or relative length
// below zero?
func (l Length) IsNegative() bool {
	var du dimen.DU
	var p float64
	switch m := l.Match(); m {
	case m.Just(&du):
		return du < 0
	case m.Percentage(&p):
		return p < 0
	case m.IsKind(Length{flags: lengthRelative}):
		return l.num < 0
	}
	return false
}

func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// --- Matching --------------------------------------------------------------

// Match starts pattern matching on a length.
//
//    switch m := l.Match(); m {
//    case m.Just(&du):
//        …
//    case m.Percentage(&p):
//        …
//    case m.IsKind(Auto()):
//        …
//    }
//
func (l Length) Match() *Matcher {
	return &Matcher{length: l}
}

// Matcher is part of pattern matching for lengths.
type Matcher struct {
	length Length
}

// IsKind matches lengths of the same kind as l.
func (m *Matcher) IsKind(l Length) *Matcher {
	if m.length.flags&kindMask == l.flags&kindMask {
		return m
	}
	return nil
}

// Just matches absolute lengths and extracts the dimension.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.length.flags&kindMask == lengthAbsolute {
		if du != nil {
			*du = m.length.d
		}
		return m
	}
	return nil
}

// Percentage matches %-relative lengths and extracts the percentage.
func (m *Matcher) Percentage(p *float64) *Matcher {
	if m.length.flags&kindMask == lengthPercent {
		if p != nil {
			*p = m.length.num
		}
		return m
	}
	return nil
}
