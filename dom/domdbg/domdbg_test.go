package domdbg

import (
	"strings"
	"testing"

	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/dom"
	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/fxlayout/resolver"
	"github.com/npillmayer/fxlayout/tag/catalog"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.dom")
	defer teardown()
	//
	r := resolver.New(breakpoint.NewRegistry(), catalog.NewRegistry())
	page := `<html><body><div id="a" fx-layout="row"><p fx-flex="50" class="x">text</p></div></body></html>`
	doc, err := dom.Parse(strings.NewReader(page), r)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := ToGraphViz(doc, &b, []style.Namespace{style.StyleNS, style.ClassNS}); err != nil {
		t.Fatal(err)
	}
	dot := b.String()
	for _, s := range []string{"digraph g", `"div#a"`, "node00001 -> node00002", "flex-direction:", "node00003_class"} {
		if !strings.Contains(dot, s) {
			t.Errorf("expected diagram to contain %q", s)
		}
	}
	if strings.Contains(dot, "_attr") {
		t.Errorf("expected attributes not to be drawn")
	}
}
