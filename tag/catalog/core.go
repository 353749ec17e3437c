package catalog

import (
	"strings"

	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/fxlayout/tag"
)

// visible computes display for a visible entity: the flex display of a
// layout on the same entity, or a cleared display otherwise.
func visible(layout tag.Value) tag.Output {
	var s string
	switch m := layout.Match(); m {
	case m.Just(&s):
		return tag.Out(parseLayout(s).display(), VisibilityPriority)
	case m.NoValue():
	}
	return tag.Clear(VisibilityPriority)
}

func isFalse(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "false" || v == "0" || v == "no"
}

// buildShow: "false" hides the entity, anything else (including "") shows it.
// Depends on self.layout.
func buildShow(value string, deps ...tag.Value) tag.Outputs {
	if isFalse(value) {
		return tag.Outputs{"style.display": tag.Out("none", VisibilityPriority)}
	}
	return tag.Outputs{"style.display": visible(dep(deps, 0))}
}

// buildHide: "false" shows the entity, anything else (including "") hides it.
// Depends on self.layout.
func buildHide(value string, deps ...tag.Value) tag.Outputs {
	if isFalse(value) {
		return tag.Outputs{"style.display": visible(dep(deps, 0))}
	}
	return tag.Outputs{"style.display": tag.Out("none", VisibilityPriority)}
}

// buildClass: white space separated class names, added to the class list.
func buildClass(value string, _ ...tag.Value) tag.Outputs {
	out := tag.Outputs{}
	for _, c := range strings.Fields(value) {
		out[style.Key(style.ClassNS, c)] = tag.Out(c, BasePriority)
	}
	return out
}

// buildStyle: inline CSS declarations. Declarations from this tag win
// over computed flexbox properties.
func buildStyle(value string, _ ...tag.Value) tag.Outputs {
	kvs, err := style.ParseDeclarations(value)
	if err != nil {
		tracer().Errorf("catalog: style: %v", err)
		return tag.Outputs{}
	}
	out := tag.Outputs{}
	for _, kv := range kvs {
		out[style.Key(style.StyleNS, kv.Key)] = tag.Out(kv.Value.String(), StylePriority)
	}
	return out
}
