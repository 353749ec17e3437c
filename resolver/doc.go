/*
Package resolver implements the coordinator of layout resolution.

Overview

A Resolver tracks which breakpoints are active, selects for every entity the
winning raw value per tag, resolves dependencies across the entity tree and on
the ambient text direction, merges tag outputs by priority and applies them to
the entities.

There are three triggers for recomputation:

■ Breakpoint activation changes (Evaluate, Activate) lead to a full sweep over
all entities. Per-entity recomputations requested during a sweep are queued
and drained once, after the sweep.

■ Directionality changes (SetDirection) recompute the entities which depended
on directionality during their last computation.

■ Entity mutations (Assert/Retract on an entity, register/deregister) recompute
the entity and the entities depending on it.

Resolution is single-threaded and synchronous. A Resolver must not be shared
between goroutines without external synchronization.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resolver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fxlayout.resolver'.
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.resolver")
}
