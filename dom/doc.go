/*
Package dom binds HTML documents to layout entities.

Overview

A Document wraps an HTML parse tree (package golang.org/x/net/html) and creates
an entity for every element within its scope. Attributes of the form

    fx-<tag>="value"               asserted at the fallback breakpoint
    fx-<tag>.<breakpoint>="value"  asserted at a named breakpoint

become tag assertions on the element's entity, e.g.

    <div fx-layout="column" fx-layout.gt-sm="row">

Inline styles, classes and any other attributes seed the live property set of
the entity. Attribute changes have to go through SetAttribute and
RemoveAttribute, which act as change notification for the resolver.
Outputs applied by the resolver are written back to the HTML tree with Sync.

The text direction of the document is taken from the dir attribute of the
html element.

Tree Implementation

Entities are built on top of a general purpose tree type (package tree), in
the same shape as the HTML element tree in scope. In a fully object oriented
programming language we would subclass the tree type, but in Go we resort to
composition, including a generic tree node in every entity.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'fxlayout.dom'
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.dom")
}
