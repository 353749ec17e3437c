/*
Package breakpoint manages named, prioritized media conditions.

Overview

A breakpoint is a named condition (usually a range of viewport widths) together
with a priority. Values for layout tags may be asserted per breakpoint; whenever
more than one active breakpoint asserts a value for the same tag, the breakpoint
with the higher priority wins.

Breakpoints are registered once at start-up, from one or more sources (the
default catalogue, configuration files, client code). Registering a name twice
overrides the earlier registration. The Fallback breakpoint is always present,
always active and has the lowest possible priority; it holds values asserted
without a breakpoint qualifier.

Evaluating media conditions is the host's business. Package breakpoint provides
type Viewport as a Matcher for the subset of media queries used by the default
catalogue.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package breakpoint

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fxlayout.breakpoint'.
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.breakpoint")
}
