/*
Package tag defines layout tags, pure computation rules turning a raw string
value into prioritized output properties.

Overview

A tag is asserted on an entity with a raw string value, e.g.

    layout = "row wrap"

The tag's build function turns the value into a map of output keys, each
carrying a value and a priority:

    style.display        = flex   (0)
    style.flex-direction = row    (0)
    style.flex-wrap      = wrap   (0)

Tags may declare dependencies on other tags of the same entity ("self.<tag>"),
on tags of the parent entity ("parent.<tag>"), or on the ambient text direction
("directionality"). Dependencies are resolved before build is called and are
handed to build in declaration order, as option type Value. A dependency that
cannot be resolved is NoValue(), and build functions have to handle it explicitly.

Build functions must be pure: same input, same output, and no mutation of
arguments. A panicking build function is a programming error and is not recovered.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tag

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fxlayout.tag'.
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.tag")
}
