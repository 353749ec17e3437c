package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/fxlayout/tag"
	"github.com/npillmayer/fxlayout/tree"
)

// Observer is notified about changes of entities.
type Observer interface {
	EntityChanged(e *Entity)  // a tag value has been asserted or retracted
	EntityAttached(e *Entity) // e has been registered
	EntityDetached(e *Entity) // e has been deregistered
}

// ErrNotAttached is returned for operations which need a registered entity.
var ErrNotAttached = errors.New("entity not attached")

// ErrCycle is returned if registering an entity would make it its own ancestor.
var ErrCycle = errors.New("entity hierarchy would contain a cycle")

// Entity is a node of the layout hierarchy.
type Entity struct {
	tree.Node[*Entity]                              // we build on top of general purpose tree
	name               string                       // for tracing and debugging
	values             map[string]map[string]string // breakpoint → tag → raw value
	live               *style.PropertySet           // properties exposed to the environment
	fallbacks          map[string]fallback          // output key → value before first claim
	observer           Observer
	attached           bool
}

// fallback is an entry of the transaction log of an entity.
type fallback struct {
	value   style.Property
	present bool // false if the key was unset before its first claim
}

// New creates an entity. live is the live property set of the entity, as found
// in its environment. If live is nil, an empty property set is created.
func New(name string, live *style.PropertySet) *Entity {
	if live == nil {
		live = style.NewPropertySet()
	}
	e := &Entity{
		name:      name,
		values:    make(map[string]map[string]string),
		live:      live,
		fallbacks: make(map[string]fallback),
	}
	e.Payload = e // Payload will always reference the entity itself
	return e
}

// Node gets the entity from a generic tree node.
func Node(n *tree.Node[*Entity]) *Entity {
	if n == nil {
		return nil
	}
	return n.Payload
}

// Name returns the name of an entity.
func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<%s>", e.name)
}

// Live returns the live property set of an entity.
func (e *Entity) Live() *style.PropertySet {
	return e.live
}

// ParentEntity returns the parent of e, or nil.
func (e *Entity) ParentEntity() *Entity {
	return Node(e.Parent())
}

// ChildEntities returns the children of e.
func (e *Entity) ChildEntities() []*Entity {
	children := e.Children()
	r := make([]*Entity, len(children))
	for i, ch := range children {
		r[i] = ch.Payload
	}
	return r
}

// IsAttached is a predicate: is e registered with an observer?
func (e *Entity) IsAttached() bool {
	return e.attached
}

// --- Assertions -------------------------------------------------------

// Assert sets the raw value of tag t at breakpoint bp. An empty breakpoint
// name denotes the fallback breakpoint.
func (e *Entity) Assert(bp, t, value string) {
	m, ok := e.values[bp]
	if !ok {
		m = make(map[string]string)
		e.values[bp] = m
	}
	m[t] = value
	tracer().Debugf("entity: %s asserts %s%s = %q", e, t, qualifier(bp), value)
	e.changed()
}

// Retract removes the raw value of tag t at breakpoint bp.
func (e *Entity) Retract(bp, t string) {
	if m, ok := e.values[bp]; ok {
		delete(m, t)
		if len(m) == 0 {
			delete(e.values, bp)
		}
	}
	tracer().Debugf("entity: %s retracts %s%s", e, t, qualifier(bp))
	e.changed()
}

func (e *Entity) changed() {
	if e.attached && e.observer != nil {
		e.observer.EntityChanged(e)
	}
}

func qualifier(bp string) string {
	if bp == breakpoint.FallbackName {
		return ""
	}
	return "." + bp
}

// Value returns the raw value of tag t asserted at breakpoint bp.
func (e *Entity) Value(bp, t string) (string, bool) {
	v, ok := e.values[bp][t]
	return v, ok
}

// Values returns a copy of the raw values asserted at breakpoint bp.
func (e *Entity) Values(bp string) map[string]string {
	m := make(map[string]string, len(e.values[bp]))
	for t, v := range e.values[bp] {
		m[t] = v
	}
	return m
}

// Breakpoints returns the names of all breakpoints e has assertions for,
// sorted by name.
func (e *Entity) Breakpoints() []string {
	bps := make([]string, 0, len(e.values))
	for bp := range e.values {
		bps = append(bps, bp)
	}
	sort.Strings(bps)
	return bps
}

// --- Registration -----------------------------------------------------

// Register attaches e to the hierarchy, below parent (which may be nil for
// a root entity), and reports it to observer o. Registering an attached entity
// moves it to a new parent. An entity cannot be registered below itself or
// one of its descendants.
func (e *Entity) Register(parent *Entity, o Observer) error {
	if parent != nil {
		if parent == e {
			return fmt.Errorf("%w: %s below itself", ErrCycle, e)
		}
		for _, a := range tree.Ancestors(&parent.Node) {
			if a == &e.Node {
				return fmt.Errorf("%w: %s below descendant %s", ErrCycle, e, parent)
			}
		}
		parent.AddChild(&e.Node)
	}
	e.observer = o
	e.attached = true
	tracer().Debugf("entity: registered %s below %s", e, parent)
	if o != nil {
		o.EntityAttached(e)
	}
	return nil
}

// Deregister detaches e, together with its sub-tree, from the hierarchy.
// Children are deregistered first, and e is isolated from its parent.
// The live property set keeps its last state.
func (e *Entity) Deregister() {
	_ = tree.BottomUp(&e.Node, func(n *tree.Node[*Entity], _ int) error {
		Node(n).detach()
		return nil
	})
}

func (e *Entity) detach() {
	if !e.attached {
		return
	}
	e.attached = false
	e.Isolate()
	tracer().Debugf("entity: deregistered %s", e)
	if e.observer != nil {
		e.observer.EntityDetached(e)
	}
	e.observer = nil
}

// --- Applying outputs -------------------------------------------------

// Apply writes merged tag outputs to the live property set.
//
// For every output key claimed before but not present in out (or present as
// a clear output), the recorded fallback is restored and forgotten. For every
// key present, the current live value is recorded as fallback if it is claimed
// for the first time, and the new value is written. Class keys are additive.
//
// Malformed keys are skipped and reported as an error.
func (e *Entity) Apply(out tag.Outputs) error {
	var errs []string
	for _, key := range e.fallbackKeys() {
		if o, claimed := out[key]; claimed && !o.Clear {
			continue
		}
		fb := e.fallbacks[key]
		var err error
		if fb.present {
			err = e.live.Set(key, fb.value)
		} else {
			err = e.live.Remove(key)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
		delete(e.fallbacks, key)
		tracer().Debugf("entity: %s restored %s", e, key)
	}
	for _, key := range out.Keys() {
		o := out[key]
		if o.Clear {
			continue
		}
		if _, _, err := style.ParseKey(key); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if _, recorded := e.fallbacks[key]; !recorded {
			v, present := e.live.Get(key)
			e.fallbacks[key] = fallback{value: v, present: present}
		}
		_ = e.live.Set(key, style.Property(o.Value))
	}
	if len(errs) > 0 {
		return fmt.Errorf("entity %s: %s", e, strings.Join(errs, "; "))
	}
	return nil
}

func (e *Entity) fallbackKeys() []string {
	keys := make([]string, 0, len(e.fallbacks))
	for k := range e.fallbacks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Claimed returns all output keys currently claimed, i.e. with a recorded
// fallback, sorted.
func (e *Entity) Claimed() []string {
	return e.fallbackKeys()
}

// Fallback returns the value recorded for output key before its first claim.
// recorded is false if key is not claimed; present is false if the key had
// not been set at the time of its first claim.
func (e *Entity) Fallback(key string) (value style.Property, present bool, recorded bool) {
	fb, recorded := e.fallbacks[key]
	return fb.value, fb.present, recorded
}

// --- Host writes ------------------------------------------------------

// SetHostProperty writes a value for an output key on behalf of the
// environment. If the key is claimed by tag outputs, the live value stays
// and the value is recorded as the fallback to restore when the claim ends.
func (e *Entity) SetHostProperty(key string, p style.Property) error {
	if k, ok := e.claimed(key); ok {
		e.fallbacks[k] = fallback{value: p, present: true}
		tracer().Debugf("entity: %s host value for claimed %s deferred", e, k)
		return nil
	}
	return e.live.Set(key, p)
}

// RemoveHostProperty removes an output key on behalf of the environment.
// If the key is claimed by tag outputs, the live value stays and the key
// will be unset when the claim ends.
func (e *Entity) RemoveHostProperty(key string) error {
	if k, ok := e.claimed(key); ok {
		e.fallbacks[k] = fallback{}
		tracer().Debugf("entity: %s host removal of claimed %s deferred", e, k)
		return nil
	}
	return e.live.Remove(key)
}

// claimed finds the claim for an output key, comparing keys by namespace and
// name, as outputs may omit the style namespace.
func (e *Entity) claimed(key string) (string, bool) {
	if _, ok := e.fallbacks[key]; ok {
		return key, true
	}
	ns, name, err := style.ParseKey(key)
	if err != nil {
		return "", false
	}
	for k := range e.fallbacks {
		if kns, kname, err := style.ParseKey(k); err == nil && kns == ns && kname == name {
			return k, true
		}
	}
	return "", false
}
