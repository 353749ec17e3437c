package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
)

// ErrDimension flags a value which is not a single CSS number, percentage or
// dimension.
var ErrDimension = errors.New("not a CSS dimension")

// Dimension is a CSS number with an optional unit. Percentages have unit "%",
// plain numbers have an empty unit. Units are lower case.
type Dimension struct {
	Value float64
	Unit  string
}

func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + d.Unit
}

// ParseDimension parses a single, optionally signed CSS number, percentage or
// dimension, e.g. "12", "-3.5em" or "80%". Surrounding white space and comments
// are skipped.
func ParseDimension(s string) (Dimension, error) {
	sc := scanner.New(s)
	tok := nextSignificant(sc)
	sign := 1.0
	if tok.Type == scanner.TokenChar && (tok.Value == "-" || tok.Value == "+") {
		if tok.Value == "-" {
			sign = -1
		}
		tok = sc.Next() // no white space allowed after the sign
	}
	d, err := DimensionOf(tok)
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: %q", ErrDimension, s)
	}
	if tok = nextSignificant(sc); tok.Type != scanner.TokenEOF {
		return Dimension{}, fmt.Errorf("%w: trailing %q in %q", ErrDimension, tok.Value, s)
	}
	d.Value *= sign
	return d, nil
}

// DimensionOf converts a number, percentage or dimension token of the CSS
// scanner.
func DimensionOf(tok *scanner.Token) (Dimension, error) {
	num, unit := tok.Value, ""
	switch tok.Type {
	case scanner.TokenNumber:
	case scanner.TokenPercentage:
		num, unit = strings.TrimSuffix(num, "%"), "%"
	case scanner.TokenDimension:
		i := strings.IndexFunc(num, func(r rune) bool {
			return r != '.' && (r < '0' || r > '9')
		})
		num, unit = num[:i], strings.ToLower(num[i:])
	default:
		return Dimension{}, fmt.Errorf("%w: %s", ErrDimension, tok)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: %v", ErrDimension, err)
	}
	return Dimension{Value: n, Unit: unit}, nil
}

func nextSignificant(sc *scanner.Scanner) *scanner.Token {
	for {
		tok := sc.Next()
		if tok.Type != scanner.TokenS && tok.Type != scanner.TokenComment {
			return tok
		}
	}
}
