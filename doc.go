/*
Package fxlayout resolves responsive layout declarations into concrete
properties of a document's elements.

Overview

Clients attach values for layout tags to entities, either unconditionally or
for a named breakpoint. A resolver keeps track of which breakpoints are active,
selects the winning value for every tag of every entity, and lets the tags
compute output properties (styles, classes, attributes). Outputs are applied
to the entity's live property set, and withdrawn outputs restore what was
there before.

Package fxlayout wires the parts together from a configuration:

    opts := fxlayout.OptionsFromConfiguration(conf)
    r, err := fxlayout.Setup(opts)
    doc, err := dom.Parse(input, r, opts.DocumentOptions()...)
    r.Evaluate(breakpoint.Viewport{Width: 800, Height: 600})
    doc.Sync()

Sub-packages

  breakpoint   named, prioritized media conditions
  tag          layout tags, their dependencies and outputs
  tag/catalog  the default set of flexbox tags
  dom/entity   entities holding asserted values and live properties
  resolver     selection, recomputation and scheduling
  dom          binding of HTML documents to entities

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fxlayout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fxlayout'.
func tracer() tracing.Trace {
	return tracing.Select("fxlayout")
}
