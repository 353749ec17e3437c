package resolver

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/dom/entity"
	"github.com/npillmayer/fxlayout/tag"
)

// Stats counts the work done by a resolver.
type Stats struct {
	Sweeps       int // full sweeps over all entities
	Drains       int // drain passes of requests queued during sweeps
	Computations int // derivations of entity outputs
}

// ApplyFunc is called after outputs have been applied to an entity.
type ApplyFunc func(e *entity.Entity, out tag.Outputs)

// Resolver is the coordinator of layout resolution. Create with New.
type Resolver struct {
	breakpoints *breakpoint.Registry
	tags        *tag.Registry
	active      []*breakpoint.Breakpoint // descending by priority, fallback last
	matches     map[string]bool          // activation state per breakpoint name
	direction   tag.Value                // ambient text direction
	entities    map[*entity.Entity]struct{}
	order       []*entity.Entity                        // registration order
	buckets     map[string]map[*entity.Entity]struct{} // breakpoint → entities with assertions
	resolved    map[*entity.Entity]map[string]string    // winning raw value per tag
	outputs     map[*entity.Entity]tag.Outputs
	dependents  map[*entity.Entity]map[*entity.Entity]struct{} // parent → dependent children
	dependsOn   map[*entity.Entity]*entity.Entity
	dirSubs     map[*entity.Entity]struct{} // directionality subscribers
	queue       []*entity.Entity
	queued      map[*entity.Entity]struct{}
	sweeping    bool // re-entrancy guard for full sweeps
	working     bool // re-entrancy guard for per-entity updates
	sweepNeeded bool
	onApply     []ApplyFunc
	stats       Stats
}

var _ entity.Observer = (*Resolver)(nil)

// New creates a resolver for a set of breakpoints and tags.
// Initially only the fallback breakpoint is active.
func New(bps *breakpoint.Registry, tags *tag.Registry) *Resolver {
	if bps == nil {
		bps = breakpoint.NewRegistry()
	}
	if tags == nil {
		tags = tag.NewRegistry()
	}
	return &Resolver{
		breakpoints: bps,
		tags:        tags,
		active:      bps.ActiveSet(nil),
		matches:     make(map[string]bool),
		direction:   tag.NoValue(),
		entities:    make(map[*entity.Entity]struct{}),
		buckets:     make(map[string]map[*entity.Entity]struct{}),
		resolved:    make(map[*entity.Entity]map[string]string),
		outputs:     make(map[*entity.Entity]tag.Outputs),
		dependents:  make(map[*entity.Entity]map[*entity.Entity]struct{}),
		dependsOn:   make(map[*entity.Entity]*entity.Entity),
		dirSubs:     make(map[*entity.Entity]struct{}),
		queued:      make(map[*entity.Entity]struct{}),
	}
}

// Breakpoints returns the breakpoint registry of r.
func (r *Resolver) Breakpoints() *breakpoint.Registry {
	return r.breakpoints
}

// Tags returns the tag registry of r.
func (r *Resolver) Tags() *tag.Registry {
	return r.tags
}

// OnApply adds a listener, called every time outputs have been applied to an
// entity. Listeners may mutate entities; the resulting recomputations are
// queued and run after the current one.
func (r *Resolver) OnApply(f ApplyFunc) {
	if f != nil {
		r.onApply = append(r.onApply, f)
	}
}

// Validate checks a (breakpoint, tag) pair of an assertion against the registries.
func (r *Resolver) Validate(bp, t string) error {
	if _, ok := r.breakpoints.Get(bp); !ok {
		return fmt.Errorf("%w: %q", breakpoint.ErrUnknownBreakpoint, bp)
	}
	if _, ok := r.tags.Get(t); !ok {
		return fmt.Errorf("%w: %q", tag.ErrUnknownTag, t)
	}
	return nil
}

// --- Breakpoint activation --------------------------------------------

// Evaluate re-evaluates every breakpoint with matcher m. If the set of active
// breakpoints changed, a full sweep is performed. It returns true if the
// active set changed.
func (r *Resolver) Evaluate(m breakpoint.Matcher) bool {
	active := r.breakpoints.ActiveSet(m)
	r.matches = make(map[string]bool, len(active))
	for _, bp := range active {
		r.matches[bp.Name] = true
	}
	return r.refreshActive()
}

// Activate switches activation of a single breakpoint, as reported by a host
// observing media conditions. The fallback breakpoint is always active.
// It returns true if the active set changed.
func (r *Resolver) Activate(name string, on bool) (bool, error) {
	bp, ok := r.breakpoints.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", breakpoint.ErrUnknownBreakpoint, name)
	}
	if bp.IsFallback() {
		if !on {
			return false, fmt.Errorf("%w: fallback cannot be deactivated", breakpoint.ErrInvalidBreakpoint)
		}
		return false, nil
	}
	r.matches[name] = on
	return r.refreshActive(), nil
}

func (r *Resolver) refreshActive() bool {
	all := r.breakpoints.All()
	active := make([]*breakpoint.Breakpoint, 0, len(all))
	for _, bp := range all {
		if bp.IsFallback() || r.matches[bp.Name] {
			active = append(active, bp)
		}
	}
	if sameBreakpoints(active, r.active) {
		return false
	}
	r.active = active
	tracer().Infof("resolver: active breakpoints are %v", active)
	r.sweepNeeded = true
	r.run()
	return true
}

func sameBreakpoints(a, b []*breakpoint.Breakpoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Active returns the names of the active breakpoints, in descending priority.
// The fallback breakpoint is always last.
func (r *Resolver) Active() []string {
	names := make([]string, len(r.active))
	for i, bp := range r.active {
		names[i] = bp.Name
	}
	return names
}

// --- Directionality ---------------------------------------------------

// SetDirection sets the ambient text direction, usually "ltr" or "rtl".
// An empty direction is unknown and resolves to tag.NoValue for dependents.
// Entities which depended on directionality in their last computation are
// recomputed.
func (r *Resolver) SetDirection(dir string) {
	v := tag.NoValue()
	if dir = strings.TrimSpace(strings.ToLower(dir)); dir != "" {
		if dir != "ltr" && dir != "rtl" {
			tracer().Infof("resolver: unusual text direction %q", dir)
		}
		v = tag.Just(dir)
	}
	if v == r.direction {
		return
	}
	r.direction = v
	tracer().Infof("resolver: text direction is %v", v)
	for _, e := range r.order {
		if _, ok := r.dirSubs[e]; ok {
			r.enqueue(e)
		}
	}
	r.run()
}

// Direction returns the ambient text direction.
func (r *Resolver) Direction() tag.Value {
	return r.direction
}

// --- Entity observation -----------------------------------------------

// EntityAttached is part of interface entity.Observer.
func (r *Resolver) EntityAttached(e *entity.Entity) {
	if _, ok := r.entities[e]; !ok {
		r.entities[e] = struct{}{}
		r.order = append(r.order, e)
	}
	r.rebucket(e)
	r.enqueue(e)
	r.run()
}

// EntityChanged is part of interface entity.Observer.
func (r *Resolver) EntityChanged(e *entity.Entity) {
	if _, ok := r.entities[e]; !ok {
		tracer().Debugf("resolver: ignoring change of unregistered entity %s", e)
		return
	}
	r.rebucket(e)
	r.enqueue(e)
	r.run()
}

// EntityDetached is part of interface entity.Observer.
// It removes e from every breakpoint bucket and every dependent set.
func (r *Resolver) EntityDetached(e *entity.Entity) {
	if _, ok := r.entities[e]; !ok {
		return
	}
	delete(r.entities, e)
	for i, x := range r.order {
		if x == e {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for _, bucket := range r.buckets {
		delete(bucket, e)
	}
	r.clearDependencies(e)
	children := r.dependents[e]
	delete(r.dependents, e)
	delete(r.resolved, e)
	delete(r.outputs, e)
	delete(r.queued, e)
	tracer().Debugf("resolver: %s detached", e)
	for ch := range children { // former dependents may still be registered elsewhere
		if _, ok := r.entities[ch]; ok {
			r.enqueue(ch)
		}
	}
	r.run()
}

func (r *Resolver) rebucket(e *entity.Entity) {
	for _, bucket := range r.buckets {
		delete(bucket, e)
	}
	for _, bp := range e.Breakpoints() {
		if _, ok := r.breakpoints.Get(bp); !ok {
			tracer().Debugf("resolver: %s asserts values for unknown breakpoint %q", e, bp)
		}
		bucket, ok := r.buckets[bp]
		if !ok {
			bucket = make(map[*entity.Entity]struct{})
			r.buckets[bp] = bucket
		}
		bucket[e] = struct{}{}
	}
}

// Bucket returns the registered entities with assertions at breakpoint bp,
// in registration order.
func (r *Resolver) Bucket(bp string) []*entity.Entity {
	bucket := r.buckets[bp]
	var es []*entity.Entity
	for _, e := range r.order {
		if _, ok := bucket[e]; ok {
			es = append(es, e)
		}
	}
	return es
}

// Entities returns all registered entities, in registration order.
func (r *Resolver) Entities() []*entity.Entity {
	es := make([]*entity.Entity, len(r.order))
	copy(es, r.order)
	return es
}

// --- Scheduling -------------------------------------------------------

func (r *Resolver) enqueue(e *entity.Entity) {
	if _, ok := r.queued[e]; ok {
		return
	}
	r.queued[e] = struct{}{}
	r.queue = append(r.queue, e)
}

// run performs pending sweeps and updates, unless called re-entrantly from
// within a sweep or update. Re-entrant requests stay queued and are picked
// up by the outermost call.
func (r *Resolver) run() {
	if r.sweeping || r.working {
		return
	}
	for r.sweepNeeded || len(r.queue) > 0 {
		if r.sweepNeeded {
			r.sweepNeeded = false
			r.sweep()
			continue
		}
		r.work()
	}
}

// sweep recomputes resolved values of all entities from scratch, then derives
// and applies outputs for all of them. Requests queued during the sweep are
// drained once at the end.
func (r *Resolver) sweep() {
	r.sweeping = true
	defer func() { r.sweeping = false }()
	r.stats.Sweeps++
	tracer().Debugf("resolver: full sweep over %d entities", len(r.order))
	entities := r.Entities()
	for _, e := range entities {
		r.resolve(e)
	}
	for _, e := range entities {
		if _, ok := r.entities[e]; ok {
			r.derive(e)
		}
	}
	if len(r.queue) > 0 {
		r.stats.Drains++
		tracer().Debugf("resolver: draining %d queued entities", len(r.queue))
		r.work()
	}
}

// work processes queued entities: each one is resolved and derived, and
// entities depending on it are derived again. Entities queued while working
// are processed in the same pass.
func (r *Resolver) work() {
	r.working = true
	defer func() { r.working = false }()
	for len(r.queue) > 0 {
		e := r.queue[0]
		r.queue = r.queue[1:]
		delete(r.queued, e)
		if _, ok := r.entities[e]; !ok {
			continue
		}
		r.resolve(e)
		r.derive(e)
		for _, d := range r.dependentsOf(e) {
			if _, pending := r.queued[d]; !pending {
				r.derive(d)
			}
		}
	}
}

func (r *Resolver) dependentsOf(e *entity.Entity) []*entity.Entity {
	deps := r.dependents[e]
	if len(deps) == 0 {
		return nil
	}
	var es []*entity.Entity
	for _, x := range r.order {
		if _, ok := deps[x]; ok {
			es = append(es, x)
		}
	}
	return es
}

// Stats returns the work counters of r.
func (r *Resolver) Stats() Stats {
	return r.stats
}
