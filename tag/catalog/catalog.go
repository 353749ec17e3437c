package catalog

import (
	"github.com/npillmayer/fxlayout/tag"
)

// Priorities of catalogue outputs.
const (
	BasePriority       = 0  // flexbox properties
	StylePriority      = 5  // explicit style declarations
	VisibilityPriority = 10 // show and hide
)

// Names of the catalogue tags.
const (
	Layout      = "layout"
	LayoutAlign = "layout-align"
	Flex        = "flex"
	Gap         = "gap"
	Offset      = "offset"
	Order       = "order"
	Fill        = "fill"
	Show        = "show"
	Hide        = "hide"
	Class       = "class"
	Style       = "style"
)

// Units are the units for unitless lengths of gap and offset values.
type Units struct {
	Gap    string
	Offset string
}

// DefaultUnits interprets unitless gaps as pixels and unitless offsets
// as percentages.
func DefaultUnits() Units {
	return Units{Gap: "px", Offset: "%"}
}

// Tags returns the catalogue tags with default units.
func Tags() []tag.Tag {
	return TagsWithUnits(DefaultUnits())
}

// TagsWithUnits returns the catalogue tags, in the order they should be
// registered. Registration order breaks ties between outputs of equal
// priority, so layout comes first and style last.
func TagsWithUnits(u Units) []tag.Tag {
	if u.Gap == "" {
		u.Gap = DefaultUnits().Gap
	}
	if u.Offset == "" {
		u.Offset = DefaultUnits().Offset
	}
	gap := func(value string, deps ...tag.Value) tag.Outputs {
		return buildGap(u.Gap, value, deps...)
	}
	offset := func(value string, deps ...tag.Value) tag.Outputs {
		return buildOffset(u.Offset, value, deps...)
	}
	return []tag.Tag{
		{Name: Layout, Build: buildLayout},
		{Name: LayoutAlign, Deps: []string{tag.Self(Layout)}, Build: buildLayoutAlign},
		{Name: Flex, Deps: []string{tag.Parent(Layout)}, Build: buildFlex},
		{Name: Gap, Deps: []string{tag.Self(Layout)}, Build: gap},
		{Name: Offset, Deps: []string{tag.Parent(Layout), tag.DirectionalityKey}, Build: offset},
		{Name: Order, Build: buildOrder},
		{Name: Fill, Build: buildFill},
		{Name: Show, Deps: []string{tag.Self(Layout)}, Build: buildShow},
		{Name: Hide, Deps: []string{tag.Self(Layout)}, Build: buildHide},
		{Name: Class, Build: buildClass},
		{Name: Style, Build: buildStyle},
	}
}

// Register registers the catalogue tags with a tag registry.
func Register(r *tag.Registry, u Units) error {
	return r.Register(TagsWithUnits(u)...)
}

// NewRegistry creates a tag registry holding the catalogue tags with
// default units.
func NewRegistry() *tag.Registry {
	r := tag.NewRegistry()
	if err := Register(r, DefaultUnits()); err != nil {
		panic(err) // catalogue tags are static
	}
	return r
}
