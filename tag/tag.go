package tag

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Output is a single computed output property of a tag.
//
// An output with Clear set explicitly clears its key: it takes part in priority
// conflicts like any other output, but is never applied as a value. Instead,
// the key is treated as absent when outputs are applied to an entity.
type Output struct {
	Value    string
	Priority int
	Clear    bool
}

// Out creates an output with a value and a priority.
func Out(value string, prio int) Output {
	return Output{Value: value, Priority: prio}
}

// Clear creates an output which clears its key.
func Clear(prio int) Output {
	return Output{Priority: prio, Clear: true}
}

func (o Output) String() string {
	if o.Clear {
		return fmt.Sprintf("<clear>(%d)", o.Priority)
	}
	return fmt.Sprintf("%q(%d)", o.Value, o.Priority)
}

// Outputs maps output keys to outputs. Output keys are of the form
// "<namespace>.<key>", with namespace being one of style, attr or class.
type Outputs map[string]Output

// Keys returns the output keys in sorted order.
func (o Outputs) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal is a predicate: do two outputs maps hold the same outputs?
func (o Outputs) Equal(other Outputs) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		if w, ok := other[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// BuildFunc computes the outputs of a tag from its raw value and its resolved
// dependencies (in order of declaration).
type BuildFunc func(value string, deps ...Value) Outputs

// Tag is a named, pure computation rule.
type Tag struct {
	Name  string    // unique name of the tag
	Deps  []string  // dependency keys: "self.<tag>", "parent.<tag>" or "directionality"
	Build BuildFunc // pure build function
	deps  []Dependency
}

// Dependencies returns the parsed dependency keys of a registered tag.
func (t *Tag) Dependencies() []Dependency {
	return t.deps
}

func (t *Tag) String() string {
	return fmt.Sprintf("tag(%s)", t.Name)
}

// --- Dependencies -----------------------------------------------------

// DepKind classifies dependency keys.
type DepKind uint8

// Kinds of dependencies.
const (
	SelfDep           DepKind = iota // another tag of the same entity
	ParentDep                        // a tag of the parent entity
	DirectionalityDep                // the ambient text direction
)

// DirectionalityKey is the sentinel dependency key for the ambient text direction.
const DirectionalityKey = "directionality"

// Dependency is a parsed dependency key.
type Dependency struct {
	Kind DepKind
	Tag  string // name of the tag depended on, empty for DirectionalityDep
}

// ErrMalformedDependency flags a dependency key which cannot be parsed.
var ErrMalformedDependency = errors.New("malformed dependency key")

// ParseDependency parses a dependency key.
func ParseDependency(key string) (Dependency, error) {
	if key == DirectionalityKey {
		return Dependency{Kind: DirectionalityDep}, nil
	}
	scope, name, found := strings.Cut(key, ".")
	if !found || name == "" {
		return Dependency{}, fmt.Errorf("%w: %q", ErrMalformedDependency, key)
	}
	switch scope {
	case "self":
		return Dependency{Kind: SelfDep, Tag: name}, nil
	case "parent":
		return Dependency{Kind: ParentDep, Tag: name}, nil
	}
	return Dependency{}, fmt.Errorf("%w: %q", ErrMalformedDependency, key)
}

// Self returns the dependency key for a tag of the same entity.
func Self(tag string) string {
	return "self." + tag
}

// Parent returns the dependency key for a tag of the parent entity.
func Parent(tag string) string {
	return "parent." + tag
}

func (d Dependency) String() string {
	switch d.Kind {
	case SelfDep:
		return Self(d.Tag)
	case ParentDep:
		return Parent(d.Tag)
	}
	return DirectionalityKey
}

// --- Registry ---------------------------------------------------------

// ErrUnknownTag flags a tag name which has not been registered.
var ErrUnknownTag = errors.New("unknown tag")

// ErrInvalidTag flags a tag definition which cannot be registered.
var ErrInvalidTag = errors.New("invalid tag")

// Registry maps tag names to tags. Iteration order is registration order,
// which defines the tie-break order when outputs of tags collide.
type Registry struct {
	byName map[string]*Tag
	order  []string
}

// NewRegistry creates an empty tag registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Tag)}
}

// Register adds tags to the registry. Registering a name a second time
// replaces the earlier tag, keeping its position in iteration order.
// Tags without a name or build function, or with malformed dependency keys,
// are skipped and reported as ErrInvalidTag.
func (r *Registry) Register(tags ...Tag) error {
	var errs []string
	for _, tag := range tags {
		t := tag
		if err := t.prepare(); err != nil {
			tracer().Errorf("tag: %v", err)
			errs = append(errs, err.Error())
			continue
		}
		if _, exists := r.byName[t.Name]; exists {
			tracer().Infof("tag: %s overrides previous registration", t.Name)
		} else {
			r.order = append(r.order, t.Name)
		}
		r.byName[t.Name] = &t
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTag, strings.Join(errs, "; "))
	}
	return nil
}

func (t *Tag) prepare() error {
	if t.Name == "" || strings.ContainsAny(t.Name, ". \t") {
		return fmt.Errorf("illegal tag name %q", t.Name)
	}
	if t.Build == nil {
		return fmt.Errorf("tag %s has no build function", t.Name)
	}
	t.Deps = append([]string(nil), t.Deps...)
	t.deps = make([]Dependency, 0, len(t.Deps))
	for _, key := range t.Deps {
		d, err := ParseDependency(key)
		if err != nil {
			return fmt.Errorf("tag %s: %v", t.Name, err)
		}
		if d.Kind == SelfDep && d.Tag == t.Name {
			return fmt.Errorf("tag %s depends on itself", t.Name)
		}
		t.deps = append(t.deps, d)
	}
	return nil
}

// Get returns a tag by name.
func (r *Registry) Get(name string) (*Tag, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Names returns all tag names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.order)
}
