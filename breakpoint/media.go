package breakpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/fxlayout/dom/style"
)

// ErrMediaQuery flags a media query which cannot be parsed.
var ErrMediaQuery = errors.New("cannot parse media query")

// Viewport describes the environment media conditions are evaluated against.
// It implements interface Matcher.
//
// Supported are media types "all", "screen" and "print", the keywords "not",
// "only" and "and", comma-separated query lists, and the media features
// min-/max-width, min-/max-height (in px or em) and orientation.
type Viewport struct {
	Width  float64 // width in CSS pixels
	Height float64 // height in CSS pixels
	Print  bool    // are we rendering for print media?
}

// Orientation returns "portrait" or "landscape".
func (vp Viewport) Orientation() string {
	if vp.Height >= vp.Width {
		return "portrait"
	}
	return "landscape"
}

// Matches is part of interface Matcher. An empty media condition always holds,
// a malformed one never does.
func (vp Viewport) Matches(media string) bool {
	list, err := ParseMedia(media)
	if err != nil {
		tracer().Errorf("breakpoint: %v", err)
		return false
	}
	return list.Matches(vp)
}

// MediaQueryList is a parsed, comma-separated list of media queries.
// It matches if any of its queries matches.
type MediaQueryList []MediaQuery

// MediaQuery is a single media query.
type MediaQuery struct {
	Not       bool
	MediaType string // "all", "screen" or "print"
	Features  []MediaFeature
}

// MediaFeature is a media feature test, e.g. "(min-width: 600px)".
// Size features carry their value converted to CSS pixels.
type MediaFeature struct {
	Name  string
	Value string
	px    float64
}

// ParseMedia parses a media condition. An empty condition is an empty list,
// which matches every viewport.
func ParseMedia(media string) (MediaQueryList, error) {
	media = strings.ToLower(strings.TrimSpace(media))
	if media == "" {
		return nil, nil
	}
	toks, err := mediaTokens(media)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrMediaQuery, media, err)
	}
	var list MediaQueryList
	for _, q := range splitQueries(toks) {
		mq, err := parseQuery(q)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrMediaQuery, media, err)
		}
		list = append(list, mq)
	}
	return list, nil
}

// mediaTokens scans a media condition with the CSS scanner, dropping white
// space and comments. Functional notation like "and(" is split into an
// identifier and a parenthesis.
func mediaTokens(media string) ([]*scanner.Token, error) {
	var toks []*scanner.Token
	sc := scanner.New(media)
	for {
		tok := sc.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return toks, nil
		case scanner.TokenError:
			return nil, errors.New(tok.Value)
		case scanner.TokenS, scanner.TokenComment:
		case scanner.TokenFunction:
			ident := *tok
			ident.Type, ident.Value = scanner.TokenIdent, strings.TrimSuffix(tok.Value, "(")
			paren := *tok
			paren.Type, paren.Value = scanner.TokenChar, "("
			toks = append(toks, &ident, &paren)
		default:
			toks = append(toks, tok)
		}
	}
}

func splitQueries(toks []*scanner.Token) [][]*scanner.Token {
	var queries [][]*scanner.Token
	start := 0
	for i, tok := range toks {
		if isChar(tok, ",") {
			queries = append(queries, toks[start:i])
			start = i + 1
		}
	}
	return append(queries, toks[start:])
}

func isChar(tok *scanner.Token, c string) bool {
	return tok.Type == scanner.TokenChar && tok.Value == c
}

func parseQuery(toks []*scanner.Token) (MediaQuery, error) {
	mq := MediaQuery{MediaType: "all"}
	if len(toks) == 0 {
		return mq, errors.New("empty query")
	}
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.Type == scanner.TokenIdent:
			switch tok.Value {
			case "and", "only":
			case "not":
				if i != 0 {
					return mq, fmt.Errorf("misplaced 'not' at column %d", tok.Column)
				}
				mq.Not = true
			case "all", "screen", "print":
				mq.MediaType = tok.Value
			default:
				return mq, fmt.Errorf("unknown media type %q", tok.Value)
			}
		case isChar(tok, "("):
			f, n, err := parseFeature(toks[i+1:])
			if err != nil {
				return mq, err
			}
			mq.Features = append(mq.Features, f)
			i += n
		default:
			return mq, fmt.Errorf("unexpected %q at column %d", tok.Value, tok.Column)
		}
	}
	return mq, nil
}

// parseFeature parses the tokens of a media feature following its opening
// parenthesis. It returns the number of tokens consumed, including the
// closing parenthesis.
func parseFeature(toks []*scanner.Token) (MediaFeature, int, error) {
	if len(toks) == 0 || toks[0].Type != scanner.TokenIdent {
		return MediaFeature{}, 0, errors.New("missing media feature name")
	}
	f := MediaFeature{Name: toks[0].Value}
	i := 1
	if i < len(toks) && isChar(toks[i], ":") {
		var value strings.Builder
		for i++; i < len(toks) && !isChar(toks[i], ")"); i++ {
			value.WriteString(toks[i].Value)
		}
		f.Value = value.String()
	}
	if i >= len(toks) || !isChar(toks[i], ")") {
		return f, i, fmt.Errorf("unbalanced media feature %q", f.Name)
	}
	switch f.Name {
	case "min-width", "max-width", "min-height", "max-height":
		px, err := pixels(f.Value)
		if err != nil {
			return f, i, fmt.Errorf("media feature %s: %v", f.Name, err)
		}
		f.px = px
	}
	return f, i + 1, nil
}

// Matches is a predicate: does any query in the list match the viewport?
// The empty list matches every viewport.
func (list MediaQueryList) Matches(vp Viewport) bool {
	if len(list) == 0 {
		return true
	}
	for _, q := range list {
		if q.Matches(vp) {
			return true
		}
	}
	return false
}

// Matches is a predicate: does the query match the viewport?
func (q MediaQuery) Matches(vp Viewport) bool {
	match := true
	switch q.MediaType {
	case "screen":
		match = !vp.Print
	case "print":
		match = vp.Print
	}
	for _, f := range q.Features {
		if !match {
			break
		}
		match = f.matches(vp)
	}
	if q.Not {
		return !match
	}
	return match
}

func (f MediaFeature) matches(vp Viewport) bool {
	switch f.Name {
	case "orientation":
		return f.Value == vp.Orientation()
	case "min-width":
		return vp.Width >= f.px
	case "max-width":
		return vp.Width <= f.px
	case "min-height":
		return vp.Height >= f.px
	case "max-height":
		return vp.Height <= f.px
	}
	tracer().Infof("breakpoint: unsupported media feature %q", f.Name)
	return false
}

// pixels converts a length in px, em or rem into CSS pixels. A unit-less 0 is
// accepted.
func pixels(v string) (float64, error) {
	d, err := style.ParseDimension(v)
	if err != nil {
		return 0, err
	}
	switch d.Unit {
	case "px":
		return d.Value, nil
	case "em", "rem":
		return d.Value * 16, nil
	case "":
		if d.Value == 0 {
			return 0, nil
		}
	}
	return 0, fmt.Errorf("not a length: %q", v)
}
