package dom

import (
	"errors"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/resolver"
	"github.com/npillmayer/fxlayout/tag"
	"github.com/npillmayer/fxlayout/tag/catalog"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html>
<html dir="rtl"><head><title>test</title></head><body>
<div id="box" fx-layout="column" fx-layout.xs="row" style="color: red" class="card">
  <span id="item" fx-offset="20" title="x">Hello</span>
</div>
</body></html>`

func newResolver(t *testing.T) *resolver.Resolver {
	bps := breakpoint.NewRegistry()
	require.NoError(t, bps.Register(breakpoint.Breakpoint{Name: "xs", Media: "(max-width: 599.98px)", Priority: 1000}))
	return resolver.New(bps, catalog.NewRegistry())
}

func element(t *testing.T, d *Document, selector string) *html.Node {
	n := cascadia.Query(d.Root(), cascadia.MustCompile(selector))
	if n == nil {
		t.Fatalf("expected element %s in document", selector)
	}
	return n
}

func attrOf(n *html.Node, key string) string {
	return attr(n, key)
}

func TestBindAndSync(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	r := newResolver(t)
	d, err := Parse(strings.NewReader(page), r)
	require.NoError(t, err)
	assert.Equal(t, tag.Just("rtl"), r.Direction())
	assert.Len(t, r.Entities(), 3) // body, div, span
	box, item := element(t, d, "#box"), element(t, d, "#item")
	e, ok := d.Entity(box)
	require.True(t, ok)
	assert.Equal(t, "div#box", e.Name())
	if v, _ := e.Value("xs", catalog.Layout); v != "row" {
		t.Errorf("expected fx-layout.xs to be asserted as row, is %q", v)
	}
	d.Sync()
	if s := attrOf(item, "style"); s != "margin-top: 20%;" {
		t.Errorf("expected span to be offset from the top, style is %q", s)
	}
	if s := attrOf(box, "style"); !strings.HasPrefix(s, "color: red;") || !strings.Contains(s, "flex-direction: column;") {
		t.Errorf("expected seeded color and column direction, style is %q", s)
	}
	assert.Equal(t, "card", attrOf(box, "class"))
	assert.Equal(t, "x", attrOf(item, "title"))
	//
	r.Evaluate(breakpoint.Viewport{Width: 400, Height: 800})
	assert.Equal(t, []string{"xs", ""}, r.Active())
	d.Sync()
	if s := attrOf(item, "style"); s != "margin-right: 20%;" {
		t.Errorf("expected rtl row offset, style is %q", s)
	}
	var b strings.Builder
	require.NoError(t, d.Render(&b))
	if !strings.Contains(b.String(), `style="margin-right: 20%;"`) {
		t.Errorf("expected rendered HTML to carry the offset, is %s", b.String())
	}
}

func TestAttributeChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	r := newResolver(t)
	d, err := Parse(strings.NewReader(page), r)
	require.NoError(t, err)
	box, item := element(t, d, "#box"), element(t, d, "#item")
	require.NoError(t, d.SetAttribute(box, "fx-layout", "row"))
	d.Sync()
	if s := attrOf(item, "style"); s != "margin-right: 20%;" {
		t.Errorf("expected rtl row offset, style is %q", s)
	}
	require.NoError(t, d.SetAttribute(element(t, d, "html"), "dir", "ltr"))
	d.Sync()
	if s := attrOf(item, "style"); s != "margin-left: 20%;" {
		t.Errorf("expected ltr row offset, style is %q", s)
	}
	require.NoError(t, d.RemoveAttribute(item, "fx-offset"))
	d.Sync()
	if s := attrOf(item, "style"); s != "" {
		t.Errorf("expected offset to be removed, style is %q", s)
	}
	require.NoError(t, d.SetAttribute(item, "title", "y"))
	e, _ := d.Entity(item)
	if p, _ := e.Live().Get("attr.title"); p != "y" {
		t.Errorf("expected live title to follow the attribute, is %q", p)
	}
	stray := &html.Node{Type: html.ElementNode, Data: "p"}
	if err := d.SetAttribute(stray, "fx-layout", "row"); !errors.Is(err, ErrUnbound) {
		t.Errorf("expected ErrUnbound for unbound element, is %v", err)
	}
}

func TestAppendAndRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	r := newResolver(t)
	d, err := Parse(strings.NewReader(page), r)
	require.NoError(t, err)
	box := element(t, d, "#box")
	p := &html.Node{Type: html.ElementNode, Data: "p", Attr: []html.Attribute{{Key: "fx-flex", Val: "50"}}}
	require.NoError(t, d.Append(box, p))
	assert.Len(t, r.Entities(), 4)
	d.Sync()
	if s := attrOf(p, "style"); !strings.Contains(s, "max-height: 50%;") {
		t.Errorf("expected flex basis to limit height in a column, style is %q", s)
	}
	es, err := d.Query("div > *")
	require.NoError(t, err)
	assert.Len(t, es, 2)
	require.NoError(t, d.Remove(box))
	assert.Len(t, r.Entities(), 1)
	if _, ok := d.Entity(p); ok {
		t.Errorf("expected removed element to be unbound")
	}
}

func TestStrictBinding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	doc := `<html><body><div fx-bogus="1"></div></body></html>`
	_, err := Parse(strings.NewReader(doc), newResolver(t), Strict(true))
	if !errors.Is(err, tag.ErrUnknownTag) {
		t.Errorf("expected unknown tag to fail strict binding, is %v", err)
	}
	_, err = Parse(strings.NewReader(doc), newResolver(t))
	assert.NoError(t, err)
	_, err = Parse(strings.NewReader(doc), newResolver(t), Scope("main"))
	if !errors.Is(err, ErrNoScope) {
		t.Errorf("expected ErrNoScope, is %v", err)
	}
}

func TestRemoveStyleKeepsClaimedProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	doc := `<html><body><div id="a" fx-layout="row" style="color: red"></div></body></html>`
	r := newResolver(t)
	d, err := Parse(strings.NewReader(doc), r)
	require.NoError(t, err)
	a := element(t, d, "#a")
	e, _ := d.Entity(a)
	require.NoError(t, d.RemoveAttribute(a, "style"))
	if p, _ := e.Live().Get("style.display"); p != "flex" {
		t.Errorf("expected claimed display to stay flex, is %q", p)
	}
	if _, ok := e.Live().Get("style.color"); ok {
		t.Errorf("expected host color to be removed")
	}
	var b strings.Builder
	require.NoError(t, d.Render(&b))
	if !strings.Contains(b.String(), "display: flex;") || strings.Contains(b.String(), "color") {
		t.Errorf("expected rendered element to keep display flex only, is %s", b.String())
	}
	require.NoError(t, d.RemoveAttribute(a, "fx-layout"))
	if _, ok := e.Live().Get("style.display"); ok {
		t.Errorf("expected display to be unset once the layout is retracted")
	}
}

func TestSetStyleOnClaimedProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	doc := `<html><body><div id="a" fx-layout="row" style="display: block"></div></body></html>`
	d, err := Parse(strings.NewReader(doc), newResolver(t))
	require.NoError(t, err)
	a := element(t, d, "#a")
	e, _ := d.Entity(a)
	require.NoError(t, d.SetAttribute(a, "style", "display: grid; color: blue"))
	if p, _ := e.Live().Get("style.display"); p != "flex" {
		t.Errorf("expected claimed display to stay flex, is %q", p)
	}
	if p, _ := e.Live().Get("style.color"); p != "blue" {
		t.Errorf("expected unclaimed color to be written, is %q", p)
	}
	require.NoError(t, d.RemoveAttribute(a, "fx-layout"))
	if p, _ := e.Live().Get("style.display"); p != "grid" {
		t.Errorf("expected host display to be restored after retract, is %q", p)
	}
}

func TestStrictBindingIsAtomic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	r := newResolver(t)
	doc := `<html><body><div fx-layout="row"><p fx-bogus="1"></p></div></body></html>`
	_, err := Parse(strings.NewReader(doc), r, Strict(true))
	require.Error(t, err)
	assert.Len(t, r.Entities(), 0)
	d, err := Parse(strings.NewReader(page), r, Strict(true))
	require.NoError(t, err)
	box := element(t, d, "#box")
	bad := &html.Node{Type: html.ElementNode, Data: "p", Attr: []html.Attribute{{Key: "fx-bogus", Val: "1"}}}
	if err := d.Append(box, bad); !errors.Is(err, tag.ErrUnknownTag) {
		t.Errorf("expected unknown tag to fail strict append, is %v", err)
	}
	assert.Nil(t, bad.Parent)
	assert.Len(t, r.Entities(), 3)
}

func TestStrictSetAttributeLeavesNodeUntouched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	d, err := Parse(strings.NewReader(page), newResolver(t), Strict(true))
	require.NoError(t, err)
	box := element(t, d, "#box")
	before := len(box.Attr)
	if err := d.SetAttribute(box, "fx-layout.huge", "row"); !errors.Is(err, breakpoint.ErrUnknownBreakpoint) {
		t.Errorf("expected unknown breakpoint to be rejected, is %v", err)
	}
	assert.Len(t, box.Attr, before)
	assert.Equal(t, "", attrOf(box, "fx-layout.huge"))
}
