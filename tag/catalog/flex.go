package catalog

import (
	"strconv"
	"strings"

	"github.com/npillmayer/fxlayout/tag"
)

// flexbox describes a parsed value of tag layout.
type flexbox struct {
	direction string // row | column | row-reverse | column-reverse
	wrap      string // empty, wrap, nowrap or wrap-reverse
	inline    bool
}

func (fb flexbox) isColumn() bool {
	return strings.HasPrefix(fb.direction, "column")
}

func (fb flexbox) display() string {
	if fb.inline {
		return "inline-flex"
	}
	return "flex"
}

// parseLayout parses a layout value. Unknown tokens are ignored,
// the direction defaults to row.
func parseLayout(value string) flexbox {
	fb := flexbox{direction: "row"}
	for _, token := range strings.Fields(strings.ToLower(value)) {
		switch token {
		case "row", "column", "row-reverse", "column-reverse":
			fb.direction = token
		case "wrap", "nowrap", "wrap-reverse":
			fb.wrap = token
		case "inline":
			fb.inline = true
		default:
			tracer().Debugf("catalog: ignoring layout token %q", token)
		}
	}
	return fb
}

// layoutOf interprets a layout dependency; NoValue means row.
func layoutOf(v tag.Value) flexbox {
	var s string
	switch m := v.Match(); m {
	case m.Just(&s):
		return parseLayout(s)
	case m.NoValue():
	}
	return flexbox{direction: "row"}
}

// buildLayout: "row wrap", "column inline", …
func buildLayout(value string, _ ...tag.Value) tag.Outputs {
	fb := parseLayout(value)
	out := tag.Outputs{
		"style.display":        tag.Out(fb.display(), BasePriority),
		"style.flex-direction": tag.Out(fb.direction, BasePriority),
		"style.box-sizing":     tag.Out("border-box", BasePriority),
	}
	if fb.wrap != "" {
		out["style.flex-wrap"] = tag.Out(fb.wrap, BasePriority)
	}
	return out
}

var mainAxis = map[string]string{
	"start":         "flex-start",
	"flex-start":    "flex-start",
	"center":        "center",
	"end":           "flex-end",
	"flex-end":      "flex-end",
	"space-around":  "space-around",
	"space-between": "space-between",
	"space-evenly":  "space-evenly",
}

var crossAxis = map[string]string{
	"start":    "flex-start",
	"center":   "center",
	"end":      "flex-end",
	"baseline": "baseline",
	"stretch":  "stretch",
}

// buildLayoutAlign: "<main-axis> <cross-axis>", depends on self.layout.
// Without a layout on the same entity, the entity is aligned as a row.
// Missing or unknown axis values default to start and stretch.
func buildLayoutAlign(value string, deps ...tag.Value) tag.Outputs {
	fb := layoutOf(dep(deps, 0))
	fields := strings.Fields(strings.ToLower(value))
	main, cross := "flex-start", "stretch"
	if len(fields) > 0 {
		if v, ok := mainAxis[fields[0]]; ok {
			main = v
		}
	}
	if len(fields) > 1 {
		if v, ok := crossAxis[fields[1]]; ok {
			cross = v
		}
	}
	out := tag.Outputs{
		"style.display":         tag.Out(fb.display(), BasePriority),
		"style.flex-direction":  tag.Out(fb.direction, BasePriority),
		"style.box-sizing":      tag.Out("border-box", BasePriority),
		"style.justify-content": tag.Out(main, BasePriority),
		"style.align-items":     tag.Out(cross, BasePriority),
		"style.align-content":   tag.Out(cross, BasePriority),
	}
	if cross == "stretch" {
		if fb.isColumn() {
			out["style.max-width"] = tag.Out("100%", BasePriority)
		} else {
			out["style.max-height"] = tag.Out("100%", BasePriority)
		}
	}
	return out
}

var flexShorthands = map[string]string{
	"":         "1 1 0%",
	"grow":     "1 1 100%",
	"initial":  "0 1 auto",
	"auto":     "1 1 auto",
	"none":     "0 0 auto",
	"nogrow":   "0 1 auto",
	"noshrink": "1 0 auto",
}

// buildFlex: "<basis>", "<grow> <shrink> <basis>" or a shorthand (grow,
// initial, auto, none, nogrow, noshrink). Depends on parent.layout, which
// decides wether a basis also limits width or height; a parent without a
// layout is treated as a row.
func buildFlex(value string, deps ...tag.Value) tag.Outputs {
	fb := layoutOf(dep(deps, 0))
	value = strings.TrimSpace(strings.ToLower(value))
	out := tag.Outputs{
		"style.box-sizing": tag.Out("border-box", BasePriority),
	}
	if sh, ok := flexShorthands[value]; ok {
		out["style.flex"] = tag.Out(sh, BasePriority)
		return out
	}
	fields := strings.Fields(value)
	var basis Length
	var err error
	switch len(fields) {
	case 1:
		if basis, err = ParseLength(fields[0], "%"); err != nil {
			tracer().Errorf("catalog: flex: %v", err)
			return tag.Outputs{}
		}
		out["style.flex"] = tag.Out("1 1 "+basis.CSS(), BasePriority)
	case 3:
		if basis, err = ParseLength(fields[2], "%"); err != nil {
			tracer().Errorf("catalog: flex: %v", err)
			return tag.Outputs{}
		}
		out["style.flex"] = tag.Out(fields[0]+" "+fields[1]+" "+basis.CSS(), BasePriority)
	default:
		tracer().Errorf("catalog: flex: cannot interpret %q", value)
		return tag.Outputs{}
	}
	if basis.IsNegative() {
		tracer().Errorf("catalog: flex: negative basis %q", value)
		return tag.Outputs{}
	}
	switch m := basis.Match(); m {
	case m.IsKind(Auto()):
	default:
		limit := "style.max-width"
		if fb.isColumn() {
			limit = "style.max-height"
		}
		out[limit] = tag.Out(basis.CSS(), BasePriority)
	}
	return out
}

// buildGap: "<length>", depends on self.layout. Rows get a column gap,
// columns a row gap. Without a layout on the same entity both gaps are set.
// Unitless values are interpreted in unit.
func buildGap(unit, value string, deps ...tag.Value) tag.Outputs {
	l, err := ParseLength(value, unit)
	if err != nil {
		tracer().Errorf("catalog: gap: %v", err)
		return tag.Outputs{}
	}
	if l.IsNegative() {
		tracer().Errorf("catalog: gap: negative length %q", value)
		return tag.Outputs{}
	}
	var layout string
	switch m := dep(deps, 0).Match(); m {
	case m.Just(&layout):
		if parseLayout(layout).isColumn() {
			return tag.Outputs{"style.row-gap": tag.Out(l.CSS(), BasePriority)}
		}
		return tag.Outputs{"style.column-gap": tag.Out(l.CSS(), BasePriority)}
	case m.NoValue():
	}
	return tag.Outputs{"style.gap": tag.Out(l.CSS(), BasePriority)}
}

// buildOffset: "<length>", unitless values are interpreted in unit. Depends on
// parent.layout and directionality:
//
//    parent column              → margin-top
//    parent row, rtl            → margin-right
//    parent row, ltr            → margin-left
//
// A parent without a layout counts as a row, and a missing direction as ltr.
func buildOffset(unit, value string, deps ...tag.Value) tag.Outputs {
	l, err := ParseLength(value, unit)
	if err != nil {
		tracer().Errorf("catalog: offset: %v", err)
		return tag.Outputs{}
	}
	fb := layoutOf(dep(deps, 0))
	dir := dep(deps, 1).WithDefault("ltr")
	key := "style.margin-left"
	switch {
	case fb.isColumn():
		key = "style.margin-top"
	case dir == "rtl":
		key = "style.margin-right"
	}
	return tag.Outputs{key: tag.Out(l.CSS(), BasePriority)}
}

// buildOrder: an integer; other values produce no output.
func buildOrder(value string, _ ...tag.Value) tag.Outputs {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		tracer().Errorf("catalog: order: not an integer: %q", value)
		return tag.Outputs{}
	}
	return tag.Outputs{"style.order": tag.Out(strconv.Itoa(n), BasePriority)}
}

// buildFill ignores its value and stretches the entity to fill its parent.
func buildFill(string, ...tag.Value) tag.Outputs {
	return tag.Outputs{
		"style.margin":     tag.Out("0", BasePriority),
		"style.width":      tag.Out("100%", BasePriority),
		"style.height":     tag.Out("100%", BasePriority),
		"style.min-width":  tag.Out("100%", BasePriority),
		"style.min-height": tag.Out("100%", BasePriority),
	}
}

// dep returns dependency #i, or NoValue if build has been called with fewer
// dependencies than declared.
func dep(deps []tag.Value, i int) tag.Value {
	if i < len(deps) {
		return deps[i]
	}
	return tag.NoValue()
}
