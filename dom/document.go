package dom

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/fxlayout/dom/entity"
	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/fxlayout/resolver"
	"github.com/npillmayer/fxlayout/tag"
	"golang.org/x/net/html"
)

// DefaultPrefix is the attribute prefix for tag assertions.
const DefaultPrefix = "fx-"

// ErrNoScope is returned if the scope selector of a document matches no element.
var ErrNoScope = errors.New("scope selector matches no element")

// ErrUnbound is returned for HTML nodes without an entity.
var ErrUnbound = errors.New("HTML node is not bound to an entity")

var dirSelector = cascadia.MustCompile("html[dir]")

// Document binds an HTML tree to layout entities of a resolver.
type Document struct {
	root     *html.Node
	resolver *resolver.Resolver
	entities map[*html.Node]*entity.Entity
	nodes    map[*entity.Entity]*html.Node
	dirty    map[*entity.Entity]struct{}
	scope    string
	prefix   string
	strict   bool
}

// Option configures a document.
type Option func(*Document)

// Scope sets a CSS selector for the elements to bind. Every matching element
// and all its element descendants get an entity. The default scope is "body".
func Scope(selector string) Option {
	return func(d *Document) {
		d.scope = selector
	}
}

// AttributePrefix sets the prefix of assertion attributes. Default is "fx-".
func AttributePrefix(prefix string) Option {
	return func(d *Document) {
		d.prefix = strings.ToLower(prefix)
	}
}

// Strict makes binding fail for assertions naming unknown breakpoints or tags.
// Otherwise they are stored and ignored during resolution.
func Strict(strict bool) Option {
	return func(d *Document) {
		d.strict = strict
	}
}

// Parse parses an HTML document and binds it to resolver r.
func Parse(input io.Reader, r *resolver.Resolver, opts ...Option) (*Document, error) {
	root, err := html.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("cannot parse HTML: %w", err)
	}
	return Bind(root, r, opts...)
}

// Bind binds an HTML tree to resolver r. The text direction of r is set from
// the dir attribute of the html element, if present.
func Bind(root *html.Node, r *resolver.Resolver, opts ...Option) (*Document, error) {
	d := &Document{
		root:     root,
		resolver: r,
		entities: make(map[*html.Node]*entity.Entity),
		nodes:    make(map[*entity.Entity]*html.Node),
		dirty:    make(map[*entity.Entity]struct{}),
		scope:    "body",
		prefix:   DefaultPrefix,
	}
	for _, opt := range opts {
		opt(d)
	}
	sel, err := cascadia.Compile(d.scope)
	if err != nil {
		return nil, fmt.Errorf("invalid scope selector %q: %w", d.scope, err)
	}
	scopes := sel.MatchAll(root)
	if len(scopes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoScope, d.scope)
	}
	for _, s := range scopes {
		if err := d.validate(s); err != nil {
			return nil, err
		}
	}
	r.OnApply(func(e *entity.Entity, _ tag.Outputs) {
		if _, ok := d.nodes[e]; ok {
			d.dirty[e] = struct{}{}
		}
	})
	if h := dirSelector.MatchFirst(root); h != nil {
		r.SetDirection(attr(h, "dir"))
	}
	for _, s := range scopes {
		if _, bound := d.entities[s]; bound { // nested scope
			continue
		}
		if err := d.bind(s, nil); err != nil {
			return nil, err
		}
	}
	tracer().Infof("dom: bound %d elements", len(d.entities))
	return d, nil
}

// validate checks the assertion attributes of n and its element descendants
// in strict mode. Nothing is registered before a sub-tree passes.
func (d *Document) validate(n *html.Node) error {
	if !d.strict || n.Type != html.ElementNode {
		return nil
	}
	for _, a := range n.Attr {
		if bp, t, ok := d.assertion(a.Key); ok {
			if err := d.resolver.Validate(bp, t); err != nil {
				return fmt.Errorf("element %s, attribute %s: %w", elementName(n), a.Key, err)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := d.validate(c); err != nil {
			return err
		}
	}
	return nil
}

// bind creates entities for n and its element descendants, registers them
// below parent and asserts their tag attributes.
func (d *Document) bind(n *html.Node, parent *entity.Entity) error {
	if n.Type != html.ElementNode {
		return nil
	}
	e := d.newEntity(n)
	if err := e.Register(parent, d.resolver); err != nil {
		return err
	}
	d.entities[n] = e
	d.nodes[e] = n
	for _, a := range n.Attr {
		if bp, t, ok := d.assertion(a.Key); ok {
			e.Assert(bp, t, a.Val)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := d.bind(c, e); err != nil {
			return err
		}
	}
	return nil
}

// newEntity creates an entity for element n, with the live property set
// seeded from the element's attributes.
func (d *Document) newEntity(n *html.Node) *entity.Entity {
	live := style.NewPropertySet()
	for _, a := range n.Attr {
		if _, _, ok := d.assertion(a.Key); ok {
			continue
		}
		if err := seed(live, a.Key, a.Val); err != nil {
			tracer().Errorf("dom: element %s: %v", elementName(n), err)
		}
	}
	return entity.New(elementName(n), live)
}

func seed(live *style.PropertySet, key, val string) error {
	switch key {
	case "style":
		return live.SetStyleText(val)
	case "class":
		live.AddClasses(style.Property(val))
		return nil
	}
	return live.Set(style.Key(style.AttrNS, key), style.Property(val))
}

// assertion splits an attribute name of the form fx-<tag>[.<breakpoint>].
func (d *Document) assertion(key string) (bp, t string, ok bool) {
	if !strings.HasPrefix(key, d.prefix) || len(key) == len(d.prefix) {
		return "", "", false
	}
	t, bp, _ = strings.Cut(key[len(d.prefix):], ".")
	return bp, t, t != ""
}

func elementName(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return n.Data + "#" + id
	}
	return n.Data
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// --- Accessors --------------------------------------------------------

// Root returns the root node of the HTML tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Resolver returns the resolver the document is bound to.
func (d *Document) Resolver() *resolver.Resolver {
	return d.resolver
}

// Entity returns the entity bound to an HTML node.
func (d *Document) Entity(n *html.Node) (*entity.Entity, bool) {
	e, ok := d.entities[n]
	return e, ok
}

// Node returns the HTML node of an entity.
func (d *Document) Node(e *entity.Entity) (*html.Node, bool) {
	n, ok := d.nodes[e]
	return n, ok
}

// Query returns the entities of all bound elements matching a CSS selector,
// in document order.
func (d *Document) Query(selector string) ([]*entity.Entity, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	var es []*entity.Entity
	for _, n := range sel.MatchAll(d.root) {
		if e, ok := d.entities[n]; ok {
			es = append(es, e)
		}
	}
	return es, nil
}

// --- Change notification ----------------------------------------------

// SetAttribute sets an attribute of a bound element. Assertion attributes
// are asserted on the entity, the dir attribute of the html element changes
// the text direction, and other attributes update the live property set.
// Host values for properties claimed by tag outputs take effect when the
// claim ends.
func (d *Document) SetAttribute(n *html.Node, key, val string) error {
	key = strings.ToLower(key)
	if n.Data == "html" && key == "dir" {
		setAttr(n, key, val)
		d.resolver.SetDirection(val)
		return nil
	}
	e, ok := d.entities[n]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnbound, elementName(n))
	}
	if bp, t, ok := d.assertion(key); ok {
		if d.strict {
			if err := d.resolver.Validate(bp, t); err != nil {
				return err
			}
		}
		setAttr(n, key, val)
		e.Assert(bp, t, val)
		return nil
	}
	setAttr(n, key, val)
	d.dirty[e] = struct{}{}
	switch key {
	case "style":
		return replaceHostStyle(e, val)
	case "class":
		e.Live().AddClasses(style.Property(val))
		return nil
	}
	return e.SetHostProperty(style.Key(style.AttrNS, key), style.Property(val))
}

// RemoveAttribute removes an attribute of a bound element. Removing an
// assertion attribute retracts the assertion. Style properties claimed by
// tag outputs stay live until the claim ends.
func (d *Document) RemoveAttribute(n *html.Node, key string) error {
	key = strings.ToLower(key)
	removeAttr(n, key)
	if n.Data == "html" && key == "dir" {
		d.resolver.SetDirection("")
		return nil
	}
	e, ok := d.entities[n]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnbound, elementName(n))
	}
	if bp, t, ok := d.assertion(key); ok {
		e.Retract(bp, t)
		return nil
	}
	d.dirty[e] = struct{}{}
	switch key {
	case "style":
		return replaceHostStyle(e, "")
	case "class":
		return nil // classes are additive
	}
	return e.RemoveHostProperty(style.Key(style.AttrNS, key))
}

// replaceHostStyle replaces the host's inline style of e by text.
func replaceHostStyle(e *entity.Entity, text string) error {
	kvs, err := style.ParseDeclarations(text)
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(kvs))
	for _, kv := range kvs {
		keep[kv.Key] = true
	}
	for _, key := range hostStyleKeys(e) {
		if !keep[key] {
			if err := e.RemoveHostProperty(style.Key(style.StyleNS, key)); err != nil {
				return err
			}
		}
	}
	for _, kv := range kvs {
		if err := e.SetHostProperty(style.Key(style.StyleNS, kv.Key), kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// hostStyleKeys lists the style names the host has set for e: unclaimed live
// styles plus claimed styles with a fallback value.
func hostStyleKeys(e *entity.Entity) []string {
	claimed := make(map[string]bool)
	var keys []string
	for _, k := range e.Claimed() {
		ns, name, err := style.ParseKey(k)
		if err != nil || ns != style.StyleNS {
			continue
		}
		claimed[name] = true
		if _, present, _ := e.Fallback(k); present {
			keys = append(keys, name)
		}
	}
	for _, kv := range e.Live().Styles() {
		if !claimed[kv.Key] {
			keys = append(keys, kv.Key)
		}
	}
	return keys
}

// Append appends HTML node child to bound element parent and binds the child's
// element sub-tree.
func (d *Document) Append(parent, child *html.Node) error {
	p, ok := d.entities[parent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnbound, elementName(parent))
	}
	if err := d.validate(child); err != nil {
		return err
	}
	parent.AppendChild(child)
	return d.bind(child, p)
}

// Remove detaches a bound element from the HTML tree and deregisters the
// entities of its sub-tree.
func (d *Document) Remove(n *html.Node) error {
	e, ok := d.entities[n]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnbound, elementName(n))
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	var unbind func(*html.Node)
	unbind = func(x *html.Node) {
		if ex, ok := d.entities[x]; ok {
			delete(d.entities, x)
			delete(d.nodes, ex)
			delete(d.dirty, ex)
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			unbind(c)
		}
	}
	unbind(n)
	e.Deregister()
	return nil
}

// --- Write back -------------------------------------------------------

// Sync writes the live property sets of all entities changed by the resolver
// back to their HTML elements. It returns the number of elements written.
func (d *Document) Sync() int {
	count := 0
	for e := range d.dirty {
		if n, ok := d.nodes[e]; ok {
			d.writeBack(e, n)
			count++
		}
	}
	d.dirty = make(map[*entity.Entity]struct{})
	tracer().Debugf("dom: synced %d elements", count)
	return count
}

func (d *Document) writeBack(e *entity.Entity, n *html.Node) {
	live := e.Live()
	attrs := make([]html.Attribute, 0, len(n.Attr)+2)
	for _, a := range n.Attr {
		if _, _, ok := d.assertion(a.Key); ok {
			attrs = append(attrs, a)
		}
	}
	for _, kv := range live.Attributes() {
		attrs = append(attrs, html.Attribute{Key: kv.Key, Val: kv.Value.String()})
	}
	if s := live.StyleText(); s != "" {
		attrs = append(attrs, html.Attribute{Key: "style", Val: s})
	}
	if c := live.ClassText(); c != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: c})
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return d.attrOrder(attrs[i].Key) < d.attrOrder(attrs[j].Key)
	})
	n.Attr = attrs
}

// attrOrder puts id first, then plain attributes, class and style, then
// assertions.
func (d *Document) attrOrder(key string) int {
	switch {
	case key == "id":
		return 0
	case key == "class":
		return 2
	case key == "style":
		return 3
	case strings.HasPrefix(key, d.prefix):
		return 4
	}
	return 1
}

// Render syncs the document and renders it as HTML to w.
func (d *Document) Render(w io.Writer) error {
	d.Sync()
	return html.Render(w, d.root)
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
