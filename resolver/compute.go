package resolver

import (
	"fmt"
	"io"

	"github.com/npillmayer/fxlayout/dom/entity"
	"github.com/npillmayer/fxlayout/tag"
	"github.com/npillmayer/fxlayout/tree"
	"github.com/xlab/treeprint"
)

// resolve selects the winning raw value per tag: active breakpoints are
// visited in descending priority and the first assertion of a tag wins.
// The fallback breakpoint comes last and supplies defaults.
func (r *Resolver) resolve(e *entity.Entity) {
	values := make(map[string]string)
	for _, bp := range r.active {
		for t, v := range e.Values(bp.Name) {
			if _, claimed := values[t]; !claimed {
				values[t] = v
			}
		}
	}
	r.resolved[e] = values
}

// derive builds every resolved tag of e with its dependencies, merges the
// outputs by priority and applies them to e. Dependencies on the parent and
// on directionality are recorded anew on every derivation.
func (r *Resolver) derive(e *entity.Entity) {
	values := r.resolved[e]
	r.clearDependencies(e)
	merged := tag.Outputs{}
	for _, name := range r.tags.Names() {
		raw, ok := values[name]
		if !ok {
			continue
		}
		t, _ := r.tags.Get(name)
		deps := make([]tag.Value, len(t.Dependencies()))
		for i, d := range t.Dependencies() {
			deps[i] = r.lookup(e, values, d)
		}
		addValues(merged, t.Build(raw, deps...))
	}
	r.stats.Computations++
	r.outputs[e] = merged
	tracer().Debugf("resolver: %s → %d outputs", e, len(merged))
	if err := e.Apply(merged); err != nil {
		tracer().Errorf("resolver: %v", err)
	}
	for _, f := range r.onApply {
		f(e, merged)
	}
}

// lookup resolves a single dependency of a tag on entity e.
func (r *Resolver) lookup(e *entity.Entity, values map[string]string, d tag.Dependency) tag.Value {
	switch d.Kind {
	case tag.SelfDep:
		if v, ok := values[d.Tag]; ok {
			return tag.Just(v)
		}
	case tag.ParentDep:
		parent := e.ParentEntity()
		if parent == nil {
			return tag.NoValue()
		}
		if _, registered := r.entities[parent]; registered {
			r.addDependency(parent, e)
		}
		if v, ok := r.resolved[parent][d.Tag]; ok {
			return tag.Just(v)
		}
	case tag.DirectionalityDep:
		r.dirSubs[e] = struct{}{}
		return r.direction
	}
	return tag.NoValue()
}

// addValues merges outputs into merged. For colliding keys the higher
// priority wins; on equal priority the output merged first is kept.
func addValues(merged, outputs tag.Outputs) {
	for key, o := range outputs {
		if prev, ok := merged[key]; ok && prev.Priority >= o.Priority {
			continue
		}
		merged[key] = o
	}
}

func (r *Resolver) addDependency(parent, child *entity.Entity) {
	deps, ok := r.dependents[parent]
	if !ok {
		deps = make(map[*entity.Entity]struct{})
		r.dependents[parent] = deps
	}
	deps[child] = struct{}{}
	r.dependsOn[child] = parent
}

func (r *Resolver) clearDependencies(e *entity.Entity) {
	if parent, ok := r.dependsOn[e]; ok {
		delete(r.dependents[parent], e)
		if len(r.dependents[parent]) == 0 {
			delete(r.dependents, parent)
		}
		delete(r.dependsOn, e)
	}
	delete(r.dirSubs, e)
}

// --- Introspection ----------------------------------------------------

// Resolved returns a copy of the winning raw value per tag of e.
func (r *Resolver) Resolved(e *entity.Entity) (map[string]string, error) {
	if _, ok := r.entities[e]; !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotAttached, e)
	}
	values := make(map[string]string, len(r.resolved[e]))
	for t, v := range r.resolved[e] {
		values[t] = v
	}
	return values, nil
}

// Outputs returns a copy of the merged outputs last applied to e.
func (r *Resolver) Outputs(e *entity.Entity) (tag.Outputs, error) {
	if _, ok := r.entities[e]; !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotAttached, e)
	}
	out := make(tag.Outputs, len(r.outputs[e]))
	for k, o := range r.outputs[e] {
		out[k] = o
	}
	return out, nil
}

// Dependents returns the entities which depended on e in their last computation.
func (r *Resolver) Dependents(e *entity.Entity) []*entity.Entity {
	return r.dependentsOf(e)
}

// Dump writes the tree of registered entities, with resolved tag values and
// live property sets, to w.
func (r *Resolver) Dump(w io.Writer) error {
	root := treeprint.NewWithRoot(fmt.Sprintf("resolver %v", r.Active()))
	for _, e := range r.order {
		if p := e.ParentEntity(); p != nil {
			if _, registered := r.entities[p]; registered {
				continue
			}
		}
		r.dumpEntity(root, e)
	}
	_, err := io.WriteString(w, root.String())
	return err
}

func (r *Resolver) dumpEntity(root treeprint.Tree, e *entity.Entity) {
	branches := map[*entity.Entity]treeprint.Tree{}
	_ = tree.TopDown(&e.Node, func(n *tree.Node[*entity.Entity], depth int) error {
		x := entity.Node(n)
		if _, ok := r.entities[x]; !ok {
			return nil
		}
		parent := root
		if depth > 0 {
			b, ok := branches[x.ParentEntity()]
			if !ok { // below an unregistered entity, dumped on its own
				return nil
			}
			parent = b
		}
		b := parent.AddBranch(fmt.Sprintf("%s %s", x, x.Live()))
		values := r.resolved[x]
		for _, name := range r.tags.Names() {
			if v, ok := values[name]; ok {
				b.AddNode(fmt.Sprintf("%s = %q", name, v))
			}
		}
		branches[x] = b
		return nil
	})
}
