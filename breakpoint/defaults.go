package breakpoint

// Defaults returns the default breakpoints: the five width ranges xs, sm, md, lg, xl
// and the open ranges lt-* and gt-*. Narrower conditions carry higher priorities,
// such that e.g. "xs" wins over "lt-sm", which wins over "lt-md".
func Defaults() []Breakpoint {
	return []Breakpoint{
		{Name: "xs", Media: "screen and (min-width: 0px) and (max-width: 599.98px)", Priority: 1000},
		{Name: "sm", Media: "screen and (min-width: 600px) and (max-width: 959.98px)", Priority: 900},
		{Name: "md", Media: "screen and (min-width: 960px) and (max-width: 1279.98px)", Priority: 800},
		{Name: "lg", Media: "screen and (min-width: 1280px) and (max-width: 1919.98px)", Priority: 700},
		{Name: "xl", Media: "screen and (min-width: 1920px) and (max-width: 4999.98px)", Priority: 600},
		{Name: "lt-sm", Media: "screen and (max-width: 599.98px)", Priority: 950},
		{Name: "lt-md", Media: "screen and (max-width: 959.98px)", Priority: 850},
		{Name: "lt-lg", Media: "screen and (max-width: 1279.98px)", Priority: 750},
		{Name: "lt-xl", Media: "screen and (max-width: 1919.98px)", Priority: 650},
		{Name: "gt-xs", Media: "screen and (min-width: 600px)", Priority: -950},
		{Name: "gt-sm", Media: "screen and (min-width: 960px)", Priority: -850},
		{Name: "gt-md", Media: "screen and (min-width: 1280px)", Priority: -750},
		{Name: "gt-lg", Media: "screen and (min-width: 1920px)", Priority: -650},
	}
}

const (
	handsetPortrait  = "(orientation: portrait) and (max-width: 599.98px)"
	handsetLandscape = "(orientation: landscape) and (max-width: 959.98px)"
	tabletPortrait   = "(orientation: portrait) and (min-width: 600px) and (max-width: 839.98px)"
	tabletLandscape  = "(orientation: landscape) and (min-width: 960px) and (max-width: 1279.98px)"
	webPortrait      = "(orientation: portrait) and (min-width: 840px)"
	webLandscape     = "(orientation: landscape) and (min-width: 1280px)"
)

// Orientations returns breakpoints for device classes and their orientation.
// They take precedence over all the width-only breakpoints of Defaults.
func Orientations() []Breakpoint {
	return []Breakpoint{
		{Name: "handset", Media: handsetPortrait + ", " + handsetLandscape, Priority: 2000},
		{Name: "tablet", Media: tabletPortrait + ", " + tabletLandscape, Priority: 2100},
		{Name: "web", Media: webPortrait + ", " + webLandscape, Priority: 2200},
		{Name: "handset.portrait", Media: handsetPortrait, Priority: 3000},
		{Name: "tablet.portrait", Media: tabletPortrait, Priority: 3100},
		{Name: "web.portrait", Media: webPortrait, Priority: 3200},
		{Name: "handset.landscape", Media: handsetLandscape, Priority: 3000},
		{Name: "tablet.landscape", Media: tabletLandscape, Priority: 3100},
		{Name: "web.landscape", Media: webLandscape, Priority: 3200},
	}
}
