package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fxlayout/breakpoint"
	"github.com/npillmayer/fxlayout/dom/entity"
	"github.com/npillmayer/fxlayout/dom/style"
	"github.com/npillmayer/fxlayout/tag"
	"github.com/npillmayer/fxlayout/tag/catalog"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, bps ...breakpoint.Breakpoint) *Resolver {
	reg := breakpoint.NewRegistry()
	require.NoError(t, reg.Register(bps...))
	return New(reg, catalog.NewRegistry())
}

func live(e *entity.Entity, key string) style.Property {
	p, _ := e.Live().Get(key)
	return p
}

func TestLayoutFollowsBreakpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t, breakpoint.Breakpoint{Name: "xs", Priority: 1000})
	e := entity.New("div", nil)
	e.Register(nil, r)
	e.Assert("", catalog.Layout, "column")
	e.Assert("xs", catalog.Layout, "row")
	values, err := r.Resolved(e)
	require.NoError(t, err)
	if values[catalog.Layout] != "column" {
		t.Errorf("expected layout to resolve to column, is %q", values[catalog.Layout])
	}
	if live(e, "flex-direction") != "column" {
		t.Errorf("expected flex-direction column, is %q", live(e, "flex-direction"))
	}
	changed, err := r.Activate("xs", true)
	require.NoError(t, err)
	if !changed {
		t.Errorf("expected activation of xs to change the active set")
	}
	values, _ = r.Resolved(e)
	if values[catalog.Layout] != "row" {
		t.Errorf("expected layout to resolve to row, is %q", values[catalog.Layout])
	}
	if live(e, "flex-direction") != "row" {
		t.Errorf("expected flex-direction row, is %q", live(e, "flex-direction"))
	}
	assert.Equal(t, []string{"xs", ""}, r.Active())
	_, _ = r.Activate("xs", false)
	if live(e, "flex-direction") != "column" {
		t.Errorf("expected flex-direction column after deactivation, is %q", live(e, "flex-direction"))
	}
	assert.Equal(t, 2, r.Stats().Sweeps)
}

func TestHigherPriorityWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t,
		breakpoint.Breakpoint{Name: "low", Priority: 10},
		breakpoint.Breakpoint{Name: "high", Priority: 20},
	)
	e := entity.New("div", nil)
	e.Register(nil, r)
	e.Assert("high", catalog.Order, "2")
	e.Assert("low", catalog.Order, "1")
	_, _ = r.Activate("high", true)
	_, _ = r.Activate("low", true)
	if live(e, "order") != "2" {
		t.Errorf("expected order from higher priority breakpoint, is %q", live(e, "order"))
	}
	r.Evaluate(breakpoint.MatcherFunc(func(string) bool { return true }))
	if live(e, "order") != "2" {
		t.Errorf("expected order from higher priority breakpoint, is %q", live(e, "order"))
	}
	if r.Evaluate(breakpoint.MatcherFunc(func(string) bool { return true })) {
		t.Errorf("expected unchanged evaluation not to report a change")
	}
}

func TestFallbackSuppliesDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t, breakpoint.Breakpoint{Name: "xs", Priority: 1000})
	_, _ = r.Activate("xs", true)
	e := entity.New("div", nil)
	e.Register(nil, r)
	e.Assert("", catalog.Order, "3")
	e.Assert("xs", catalog.Fill, "")
	values, _ := r.Resolved(e)
	assert.Equal(t, map[string]string{catalog.Order: "3", catalog.Fill: ""}, values)
}

func TestRecomputationIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t)
	e := entity.New("div", nil)
	e.Register(nil, r)
	e.Assert("", catalog.Layout, "row wrap")
	e.Assert("", catalog.LayoutAlign, "center center")
	first, _ := r.Outputs(e)
	before := r.Stats().Computations
	e.Assert("", catalog.Layout, "row wrap")
	second, _ := r.Outputs(e)
	if r.Stats().Computations != before+1 {
		t.Errorf("expected exactly one recomputation, have %d", r.Stats().Computations-before)
	}
	if !first.Equal(second) {
		t.Errorf("expected identical outputs, have %v and %v", first, second)
	}
}

func TestRetractRestoresLiveValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t)
	ps := style.NewPropertySet()
	_ = ps.Set("display", "block")
	e := entity.New("div", ps)
	e.Register(nil, r)
	e.Assert("", catalog.Layout, "row")
	if live(e, "display") != "flex" {
		t.Errorf("expected display flex, is %q", live(e, "display"))
	}
	e.Retract("", catalog.Layout)
	if live(e, "display") != "block" {
		t.Errorf("expected display to be restored to block, is %q", live(e, "display"))
	}
	if _, ok := ps.Get("flex-direction"); ok {
		t.Errorf("expected flex-direction to be removed")
	}
}

func TestOffsetFollowsParentAndDirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t)
	parent, child := entity.New("parent", nil), entity.New("child", nil)
	parent.Register(nil, r)
	child.Register(parent, r)
	child.Assert("", catalog.Offset, "20")
	if live(child, "margin-left") != "20%" {
		t.Errorf("expected margin-left 20%% without parent layout, is %q", live(child, "margin-left"))
	}
	assert.Equal(t, []*entity.Entity{child}, r.Dependents(parent))
	parent.Assert("", catalog.Layout, "column")
	if live(child, "margin-top") != "20%" {
		t.Errorf("expected margin-top 20%% below a column, is %q", live(child, "margin-top"))
	}
	if _, ok := child.Live().Get("margin-left"); ok {
		t.Errorf("expected margin-left to be removed")
	}
	parent.Assert("", catalog.Layout, "row")
	r.SetDirection("rtl")
	if live(child, "margin-right") != "20%" {
		t.Errorf("expected margin-right 20%% for rtl, is %q", live(child, "margin-right"))
	}
	before := r.Stats().Computations
	r.SetDirection("RTL")
	if r.Stats().Computations != before {
		t.Errorf("expected unchanged direction not to recompute")
	}
	r.SetDirection("ltr")
	if r.Stats().Computations != before+1 {
		t.Errorf("expected only the subscriber to be recomputed, have %d", r.Stats().Computations-before)
	}
}

func TestSweepDrainsOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t, breakpoint.Breakpoint{Name: "xs", Priority: 1000})
	root := entity.New("root", nil)
	root.Register(nil, r)
	var children []*entity.Entity
	for i := 0; i < 3; i++ {
		ch := entity.New("child", nil)
		ch.Register(root, r)
		children = append(children, ch)
	}
	fired := false
	r.OnApply(func(e *entity.Entity, _ tag.Outputs) {
		if e != root || !r.sweeping || fired {
			return
		}
		fired = true
		for _, ch := range children {
			ch.Assert("", catalog.Order, "1")
			ch.Assert("", catalog.Order, "2")
		}
	})
	before := r.Stats()
	_, _ = r.Activate("xs", true)
	after := r.Stats()
	assert.Equal(t, before.Sweeps+1, after.Sweeps)
	assert.Equal(t, before.Drains+1, after.Drains)
	assert.Equal(t, before.Computations+4+3, after.Computations)
	for _, ch := range children {
		if live(ch, "order") != "2" {
			t.Errorf("expected order 2 after drain, is %q", live(ch, "order"))
		}
	}
}

func TestPriorityMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	tags := tag.NewRegistry()
	paint := func(color string, prio int) tag.BuildFunc {
		return func(string, ...tag.Value) tag.Outputs {
			return tag.Outputs{"style.color": tag.Out(color, prio)}
		}
	}
	require.NoError(t, tags.Register(
		tag.Tag{Name: "first", Build: paint("red", 1)},
		tag.Tag{Name: "second", Build: paint("blue", 1)},
		tag.Tag{Name: "strong", Build: paint("green", 2)},
		tag.Tag{Name: "mute", Build: func(string, ...tag.Value) tag.Outputs {
			return tag.Outputs{"style.color": tag.Clear(3)}
		}},
	))
	r := New(breakpoint.NewRegistry(), tags)
	ps := style.NewPropertySet()
	_ = ps.Set("color", "black")
	e := entity.New("p", ps)
	e.Register(nil, r)
	e.Assert("", "second", "")
	e.Assert("", "first", "")
	if live(e, "color") != "red" {
		t.Errorf("expected first registered tag to win a tie, color is %q", live(e, "color"))
	}
	e.Assert("", "strong", "")
	if live(e, "color") != "green" {
		t.Errorf("expected higher priority to win, color is %q", live(e, "color"))
	}
	e.Assert("", "mute", "")
	if live(e, "color") != "black" {
		t.Errorf("expected clear to restore fallback, color is %q", live(e, "color"))
	}
	out, _ := r.Outputs(e)
	assert.Equal(t, tag.Clear(3), out["style.color"])
}

func TestDetachRemovesEntity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t, breakpoint.Breakpoint{Name: "xs", Priority: 1000})
	parent, child := entity.New("parent", nil), entity.New("child", nil)
	parent.Register(nil, r)
	child.Register(parent, r)
	child.Assert("xs", catalog.Flex, "50")
	child.Assert("", catalog.Offset, "10")
	assert.Equal(t, []*entity.Entity{child}, r.Bucket("xs"))
	r.SetDirection("rtl")
	parent.Deregister()
	assert.Empty(t, r.Bucket("xs"))
	assert.Empty(t, r.Bucket(""))
	assert.Empty(t, r.Entities())
	assert.Empty(t, r.Dependents(parent))
	if _, err := r.Resolved(child); !errors.Is(err, entity.ErrNotAttached) {
		t.Errorf("expected ErrNotAttached for detached entity, is %v", err)
	}
	if _, ok := r.dirSubs[child]; ok {
		t.Errorf("expected detached entity to be removed from directionality subscribers")
	}
}

func TestUnknownNamesAreIgnored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t)
	e := entity.New("div", nil)
	e.Register(nil, r)
	e.Assert("", "bogus", "1")
	e.Assert("tv", catalog.Order, "1")
	out, err := r.Outputs(e)
	require.NoError(t, err)
	assert.Empty(t, out)
	if _, err := r.Activate("tv", true); !errors.Is(err, breakpoint.ErrUnknownBreakpoint) {
		t.Errorf("expected unknown breakpoint error, is %v", err)
	}
	if err := r.Validate("tv", catalog.Order); !errors.Is(err, breakpoint.ErrUnknownBreakpoint) {
		t.Errorf("expected unknown breakpoint error, is %v", err)
	}
	if err := r.Validate("", "bogus"); !errors.Is(err, tag.ErrUnknownTag) {
		t.Errorf("expected unknown tag error, is %v", err)
	}
	if _, err := r.Activate("", false); err == nil {
		t.Errorf("expected fallback not to be deactivatable")
	}
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t)
	parent, child := entity.New("section", nil), entity.New("article", nil)
	parent.Register(nil, r)
	child.Register(parent, r)
	parent.Assert("", catalog.Layout, "row")
	child.Assert("", catalog.Flex, "33")
	var b strings.Builder
	require.NoError(t, r.Dump(&b))
	t.Logf("\n%s", b.String())
	for _, s := range []string{"<section>", "<article>", `layout = "row"`, `flex = "33"`} {
		if !strings.Contains(b.String(), s) {
			t.Errorf("expected dump to contain %s", s)
		}
	}
}

func TestNoDependencyOnUnregisteredParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fxlayout.resolver")
	defer teardown()
	//
	r := newResolver(t)
	parent, child := entity.New("parent", nil), entity.New("child", nil)
	require.NoError(t, parent.Register(nil, nil)) // not observed by r
	require.NoError(t, child.Register(parent, r))
	child.Assert("", catalog.Offset, "20")
	if live(child, "margin-left") != "20%" {
		t.Errorf("expected margin-left 20%%, is %q", live(child, "margin-left"))
	}
	if _, ok := r.dependents[parent]; ok {
		t.Errorf("expected no dependency on an unregistered parent")
	}
	if _, ok := r.dependsOn[child]; ok {
		t.Errorf("expected child not to depend on an unregistered parent")
	}
	var b strings.Builder
	require.NoError(t, r.Dump(&b))
	if strings.Contains(b.String(), "<parent>") || !strings.Contains(b.String(), "<child>") {
		t.Errorf("expected dump to list registered entities only, is\n%s", b.String())
	}
}
