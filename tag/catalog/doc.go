/*
Package catalog provides a default catalogue of flexbox tags.

	layout        "row|column|row-reverse|column-reverse [wrap|nowrap|wrap-reverse] [inline]"
	layout-align  "<main-axis> <cross-axis>"                       (self.layout)
	flex          "<basis>" | "<grow> <shrink> <basis>" | shorthand (parent.layout)
	gap           "<length>"                                       (self.layout)
	offset        "<length>"                        (parent.layout, directionality)
	order         "<integer>"
	fill          ignored
	show, hide    "" | "true" | "false"                            (self.layout)
	class         "<class> …"
	style         "<declaration>; …"

Every tag documents the defaults it uses if a dependency resolves to
NoValue. Values which cannot be interpreted produce no output at all
and are reported to the trace.

Unitless gap values are pixels and unitless offsets are percentages, unless
other Units are passed to TagsWithUnits.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package catalog

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fxlayout.tag'.
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.tag")
}
