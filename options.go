package fxlayout

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/dom"
	"github.com/npillmayer/fxlayout/resolver"
	"github.com/npillmayer/fxlayout/tag"
	"github.com/npillmayer/fxlayout/tag/catalog"
	"github.com/npillmayer/schuko"
)

// Configuration keys read by OptionsFromConfiguration.
const (
	KeyDisableDefaults = "fxlayout.disabledefaults"
	KeyOrientation     = "fxlayout.orientation"
	KeyBreakpoints     = "fxlayout.breakpoints"
	KeyDirection       = "fxlayout.direction"
	KeyGapUnit         = "fxlayout.gapunit"
	KeyOffsetUnit      = "fxlayout.offsetunit"
	KeyStrict          = "fxlayout.strict"
	KeyPrefix          = "fxlayout.prefix"
)

// Options control the set-up of a resolver and of documents bound to it.
type Options struct {
	DisableDefaults bool   // do not register the default breakpoints
	Orientation     bool   // register the device orientation breakpoints
	BreakpointsFile string // YAML file with additional breakpoints
	Direction       string // initial text direction, "ltr" or "rtl"
	GapUnit         string // unit for unitless gap values
	OffsetUnit      string // unit for unitless offset values
	Strict          bool   // reject assertions for unknown tags or breakpoints
	Prefix          string // attribute prefix for assertions in documents
}

// DefaultOptions returns the options used if nothing is configured.
func DefaultOptions() Options {
	u := catalog.DefaultUnits()
	return Options{
		GapUnit:    u.Gap,
		OffsetUnit: u.Offset,
		Prefix:     dom.DefaultPrefix,
	}
}

// OptionsFromConfiguration reads options from a configuration. Keys which
// are not set keep their default values.
func OptionsFromConfiguration(conf schuko.Configuration) Options {
	opts := DefaultOptions()
	if conf == nil {
		return opts
	}
	opts.DisableDefaults = conf.GetBool(KeyDisableDefaults)
	opts.Orientation = conf.GetBool(KeyOrientation)
	opts.Strict = conf.GetBool(KeyStrict)
	if conf.IsSet(KeyBreakpoints) {
		opts.BreakpointsFile = conf.GetString(KeyBreakpoints)
	}
	if conf.IsSet(KeyDirection) {
		opts.Direction = conf.GetString(KeyDirection)
	}
	if u := conf.GetString(KeyGapUnit); u != "" {
		opts.GapUnit = u
	}
	if u := conf.GetString(KeyOffsetUnit); u != "" {
		opts.OffsetUnit = u
	}
	if p := conf.GetString(KeyPrefix); p != "" {
		opts.Prefix = p
	}
	return opts
}

// Breakpoints creates a breakpoint registry as configured by opts.
func (opts Options) Breakpoints() (*breakpoint.Registry, error) {
	bps := breakpoint.NewRegistry()
	if !opts.DisableDefaults {
		if err := bps.Register(breakpoint.Defaults()...); err != nil {
			return nil, err
		}
	}
	if opts.Orientation {
		if err := bps.Register(breakpoint.Orientations()...); err != nil {
			return nil, err
		}
	}
	if opts.BreakpointsFile != "" {
		extra, err := breakpoint.LoadYAMLFile(opts.BreakpointsFile)
		if err != nil {
			return nil, fmt.Errorf("breakpoints file %s: %w", opts.BreakpointsFile, err)
		}
		if err := bps.Register(extra...); err != nil {
			return nil, err
		}
	}
	return bps, nil
}

// Tags creates a tag registry holding the default catalogue, with units
// as configured by opts.
func (opts Options) Tags() (*tag.Registry, error) {
	tags := tag.NewRegistry()
	u := catalog.Units{Gap: opts.GapUnit, Offset: opts.OffsetUnit}
	if err := catalog.Register(tags, u); err != nil {
		return nil, err
	}
	return tags, nil
}

// DocumentOptions returns the options for binding documents with package dom.
func (opts Options) DocumentOptions() []dom.Option {
	docopts := []dom.Option{dom.Strict(opts.Strict)}
	if opts.Prefix != "" && opts.Prefix != dom.DefaultPrefix {
		docopts = append(docopts, dom.AttributePrefix(opts.Prefix))
	}
	return docopts
}

// Setup creates a resolver for the breakpoints and tags configured by opts.
// Clients may register additional tags and breakpoints with the resolver's
// registries before the first entity is attached.
func Setup(opts Options) (*resolver.Resolver, error) {
	bps, err := opts.Breakpoints()
	if err != nil {
		return nil, err
	}
	tags, err := opts.Tags()
	if err != nil {
		return nil, err
	}
	r := resolver.New(bps, tags)
	if dir := strings.TrimSpace(opts.Direction); dir != "" {
		r.SetDirection(dir)
	}
	tracer().Infof("fxlayout: resolver set up with %d breakpoints and %d tags", bps.Len(), tags.Len())
	return r, nil
}
