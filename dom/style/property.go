package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'fxlayout.style'
func tracer() tracing.Trace {
	return tracing.Select("fxlayout.style")
}

// Property is a raw value for a style property, DOM attribute or CSS class list.
// For example, with
//
//     flex-direction: row
//
// a property value of "row" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Fields splits a property value at white space.
func (p Property) Fields() []string {
	return strings.Fields(string(p))
}

// KeyValue is a container for a property.
type KeyValue struct {
	Key   string
	Value Property
}

func (kv KeyValue) String() string {
	return fmt.Sprintf("%s=%q", kv.Key, kv.Value)
}

// --- Output keys ------------------------------------------------------

// Namespace partitions the live property set of an entity.
type Namespace uint8

// Namespaces for output keys. Keys without a namespace prefix default to StyleNS.
const (
	StyleNS Namespace = iota // inline style property, last write wins
	AttrNS                   // DOM attribute, last write wins
	ClassNS                  // CSS class list, additive
)

var namespaceNames = [...]string{"style", "attr", "class"}

func (ns Namespace) String() string {
	if int(ns) < len(namespaceNames) {
		return namespaceNames[ns]
	}
	return "?"
}

// ErrMalformedKey is returned for output keys which cannot be split into
// a namespace and a name.
var ErrMalformedKey = errors.New("malformed output key")

// ParseKey splits an output key of the form "<namespace>.<key>" into its
// components. Omission of the namespace prefix defaults to the style namespace,
// i.e.
//
//    ParseKey("flex-direction")  => StyleNS, "flex-direction"
//    ParseKey("attr.dir")        => AttrNS, "dir"
//    ParseKey("class.fx-hidden") => ClassNS, "fx-hidden"
//
func ParseKey(key string) (Namespace, string, error) {
	if key == "" {
		return StyleNS, "", ErrMalformedKey
	}
	prefix, name, found := strings.Cut(key, ".")
	if !found {
		return StyleNS, key, nil
	}
	if name == "" {
		return StyleNS, "", fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	switch prefix {
	case "style":
		return StyleNS, name, nil
	case "attr":
		return AttrNS, name, nil
	case "class":
		return ClassNS, name, nil
	}
	// not a namespace prefix, i.e. a dotted style property name
	return StyleNS, key, nil
}

// Key creates an output key from a namespace and a name.
func Key(ns Namespace, name string) string {
	return ns.String() + "." + name
}

// --- Property Dictionary ----------------------------------------------

// propsDict is a dictionary of properties remembering insertion order.
// Order matters for rendering style attributes in a reproducible way.
type propsDict struct {
	keys []string
	m    map[string]Property
}

func (d *propsDict) get(key string) (Property, bool) {
	if d.m == nil {
		return NullStyle, false
	}
	p, ok := d.m[key]
	return p, ok
}

func (d *propsDict) set(key string, p Property) {
	if d.m == nil {
		d.m = make(map[string]Property)
	}
	if _, exists := d.m[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.m[key] = p
}

func (d *propsDict) remove(key string) {
	if _, exists := d.m[key]; !exists {
		return
	}
	delete(d.m, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

func (d *propsDict) all() []KeyValue {
	r := make([]KeyValue, len(d.keys))
	for i, k := range d.keys {
		r[i] = KeyValue{k, d.m[k]}
	}
	return r
}

// --- Property Set -----------------------------------------------------

// PropertySet is the live property set of an entity, as exposed to its
// environment. It is partitioned into inline styles, attributes and CSS classes.
// The zero value is an empty property set, ready to use.
//
// Class values are additive: setting a class key adds all the (white space
// separated) class names of the value to the class list. Class names are never
// removed by setting or removing a class key; PropertySet remembers the last
// value set for a class key only.
type PropertySet struct {
	styles     propsDict
	attrs      propsDict
	classKeys  propsDict
	classes    []string
	classIndex map[string]struct{}
}

// NewPropertySet returns a new empty property set.
func NewPropertySet() *PropertySet {
	return &PropertySet{}
}

// Get returns the live value for an output key, together with an indicator
// wether the key is set.
func (ps *PropertySet) Get(key string) (Property, bool) {
	ns, name, err := ParseKey(key)
	if err != nil {
		return NullStyle, false
	}
	switch ns {
	case AttrNS:
		return ps.attrs.get(name)
	case ClassNS:
		return ps.classKeys.get(name)
	}
	return ps.styles.get(name)
}

// Set writes a live value for an output key.
func (ps *PropertySet) Set(key string, p Property) error {
	ns, name, err := ParseKey(key)
	if err != nil {
		return err
	}
	switch ns {
	case AttrNS:
		ps.attrs.set(name, p)
	case ClassNS:
		ps.classKeys.set(name, p)
		ps.AddClasses(p)
	default:
		ps.styles.set(name, p)
	}
	return nil
}

// Remove deletes an output key from the live property set.
// For class keys only the key is forgotten, class names stay in the class list.
func (ps *PropertySet) Remove(key string) error {
	ns, name, err := ParseKey(key)
	if err != nil {
		return err
	}
	switch ns {
	case AttrNS:
		ps.attrs.remove(name)
	case ClassNS:
		ps.classKeys.remove(name)
	default:
		ps.styles.remove(name)
	}
	return nil
}

// AddClasses adds white space separated class names to the class list.
// Class names already present are ignored.
func (ps *PropertySet) AddClasses(p Property) {
	for _, c := range p.Fields() {
		if ps.HasClass(c) {
			continue
		}
		if ps.classIndex == nil {
			ps.classIndex = make(map[string]struct{})
		}
		ps.classIndex[c] = struct{}{}
		ps.classes = append(ps.classes, c)
	}
}

// HasClass is a predicate: is class c in the class list?
func (ps *PropertySet) HasClass(c string) bool {
	_, ok := ps.classIndex[c]
	return ok
}

// Styles returns all inline style properties, in order of first insertion.
func (ps *PropertySet) Styles() []KeyValue {
	return ps.styles.all()
}

// Attributes returns all attributes, in order of first insertion.
func (ps *PropertySet) Attributes() []KeyValue {
	return ps.attrs.all()
}

// Classes returns the class list.
func (ps *PropertySet) Classes() []string {
	r := make([]string, len(ps.classes))
	copy(r, ps.classes)
	return r
}

// ClassText returns the class list as a class attribute value.
func (ps *PropertySet) ClassText() string {
	return strings.Join(ps.classes, " ")
}

// Stringer for property sets; used for debugging.
func (ps *PropertySet) String() string {
	var b strings.Builder
	b.WriteString("{")
	sep := ""
	for _, kv := range ps.styles.all() {
		fmt.Fprintf(&b, "%s%s: %s", sep, kv.Key, kv.Value)
		sep = "; "
	}
	for _, kv := range ps.attrs.all() {
		fmt.Fprintf(&b, "%s@%s=%s", sep, kv.Key, kv.Value)
		sep = "; "
	}
	if len(ps.classes) > 0 {
		fmt.Fprintf(&b, "%s.%s", sep, strings.Join(ps.classes, "."))
	}
	b.WriteString("}")
	return b.String()
}
