/*
Package entity implements layout entities, the addressable nodes of the layout
hierarchy.

Overview

Every element taking part in layout resolution is represented by an entity.
An entity holds, per breakpoint, the raw tag values asserted on it, and the live
property set it exposes to its environment. Entities form a tree, built on top
of package tree, mirroring the DOM.

Change notification is abstract: whatever observes the host (DOM attributes,
files, explicit API calls) calls Assert and Retract on an entity, and the entity
forwards every change to its Observer, usually the resolver.

Applying outputs keeps a small transaction log per output key. The first time
an output key is claimed, the live value is recorded as a fallback, and the
fallback is restored as soon as no output claims the key anymore.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package entity

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fxlayout.entity'.
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.entity")
}
