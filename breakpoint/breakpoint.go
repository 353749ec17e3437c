package breakpoint

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Breakpoint is a named media condition with a priority.
// Breakpoints are immutable once registered.
type Breakpoint struct {
	Name     string `yaml:"name"`
	Media    string `yaml:"media"`
	Priority int    `yaml:"priority"`
}

// FallbackName is the name of the Fallback breakpoint. Values asserted without
// a breakpoint qualifier go to the Fallback breakpoint.
const FallbackName = ""

// Fallback is the always active breakpoint with the lowest possible priority.
var Fallback = &Breakpoint{Name: FallbackName, Priority: math.MinInt}

// IsFallback is a predicate: is bp the Fallback breakpoint?
func (bp *Breakpoint) IsFallback() bool {
	return bp != nil && bp.Name == FallbackName
}

func (bp *Breakpoint) String() string {
	if bp == nil {
		return "<nil>"
	}
	if bp.IsFallback() {
		return "[fallback]"
	}
	return fmt.Sprintf("[%s %d]", bp.Name, bp.Priority)
}

// Matcher evaluates media conditions. Hosts implement it on top of their media
// query facility; see type Viewport for a standalone implementation.
type Matcher interface {
	Matches(media string) bool
}

// MatcherFunc adapts a function to interface Matcher.
type MatcherFunc func(media string) bool

// Matches is part of interface Matcher.
func (f MatcherFunc) Matches(media string) bool {
	return f(media)
}

// ErrUnknownBreakpoint flags a breakpoint name which has not been registered.
var ErrUnknownBreakpoint = errors.New("unknown breakpoint")

// ErrInvalidBreakpoint flags a breakpoint definition which cannot be registered.
var ErrInvalidBreakpoint = errors.New("invalid breakpoint")

// --- Registry ---------------------------------------------------------

// Registry holds all known breakpoints. A new registry contains the Fallback
// breakpoint only.
type Registry struct {
	byName map[string]*Breakpoint
	serial map[string]int // registration order, used to order equal priorities
	count  int
	sorted []*Breakpoint // cache, invalidated by Register
}

// NewRegistry creates a registry with the Fallback breakpoint registered.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Breakpoint),
		serial: make(map[string]int),
	}
	r.byName[FallbackName] = Fallback
	r.serial[FallbackName] = math.MaxInt
	return r
}

// Register adds breakpoints to the registry. Registering a name a second time
// overrides condition and priority of the earlier registration (last registration
// wins). The Fallback breakpoint cannot be overridden; attempts to do so are
// reported as ErrInvalidBreakpoint, other breakpoints are registered nevertheless.
func (r *Registry) Register(bps ...Breakpoint) error {
	var err error
	for _, bp := range bps {
		if bp.Name == FallbackName {
			err = fmt.Errorf("%w: cannot override the fallback breakpoint", ErrInvalidBreakpoint)
			tracer().Errorf("breakpoint: %v", err)
			continue
		}
		b := bp // copy, breakpoints are immutable once registered
		if prev, ok := r.byName[b.Name]; ok {
			tracer().Infof("breakpoint: %v overrides %v", &b, prev)
		} else {
			r.serial[b.Name] = r.count
			r.count++
		}
		r.byName[b.Name] = &b
	}
	r.sorted = nil
	return err
}

// Get returns a breakpoint by name.
func (r *Registry) Get(name string) (*Breakpoint, bool) {
	bp, ok := r.byName[name]
	return bp, ok
}

// Len returns the number of registered breakpoints, including the Fallback breakpoint.
func (r *Registry) Len() int {
	return len(r.byName)
}

// All returns all registered breakpoints, sorted descending by priority.
// The Fallback breakpoint is always the last one.
func (r *Registry) All() []*Breakpoint {
	if r.sorted == nil {
		all := make([]*Breakpoint, 0, len(r.byName))
		for _, bp := range r.byName {
			all = append(all, bp)
		}
		r.sortDescending(all)
		r.sorted = all
	}
	all := make([]*Breakpoint, len(r.sorted))
	copy(all, r.sorted)
	return all
}

// ActiveSet returns all breakpoints whose media condition currently holds,
// sorted descending by priority. The Fallback breakpoint is always included as the
// lowest-priority member.
func (r *Registry) ActiveSet(m Matcher) []*Breakpoint {
	var active []*Breakpoint
	for _, bp := range r.All() {
		if bp.IsFallback() || (m != nil && m.Matches(bp.Media)) {
			active = append(active, bp)
		}
	}
	return active
}

// sortDescending sorts breakpoints by descending priority. Breakpoints with
// equal priority are ordered by registration, the earlier registration first,
// making the order strict. The Fallback breakpoint sorts last.
func (r *Registry) sortDescending(bps []*Breakpoint) {
	sort.SliceStable(bps, func(i, j int) bool {
		if bps[i].IsFallback() != bps[j].IsFallback() {
			return bps[j].IsFallback()
		}
		if bps[i].Priority != bps[j].Priority {
			return bps[i].Priority > bps[j].Priority
		}
		return r.serial[bps[i].Name] < r.serial[bps[j].Name]
	})
}
